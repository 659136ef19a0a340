package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepository persists accounts in the "accounts" collection. The
// unique index on email serializes concurrent signups: the first writer wins,
// the second gets ErrDuplicateEmail.
type AccountRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewAccountRepository(db *mongo.Database, logger *zap.Logger) *AccountRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Idempotent; a pre-existing index is fine.
	_, err := db.Collection("accounts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Warn("Failed to create unique email index (may already exist)", zap.Error(err))
	}

	return &AccountRepository{
		db:     db,
		logger: logger.Named("AccountRepository"),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := r.db.Collection("accounts").InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate email during account creation", zap.String("email", account.Email))
			return ErrDuplicateEmail
		}
		r.logger.Error("Database error during account creation", zap.String("email", account.Email), zap.Error(err))
		return err
	}
	r.logger.Info("Account created", zap.String("accountID", account.ID))
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.Collection("accounts").FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		r.logger.Error("Database error fetching account by email", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.Collection("accounts").FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		r.logger.Error("Database error fetching account by ID", zap.String("accountID", id), zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// UpdateFields applies an already-whitelisted field set. The caller owns the
// whitelist; this method just writes what it is given.
func (r *AccountRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.db.Collection("accounts").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("Database error during account update", zap.String("accountID", id), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	r.logger.Info("Account updated", zap.String("accountID", id))
	return nil
}

// SetVerificationCode replaces the stored code for an unverified account.
func (r *AccountRepository) SetVerificationCode(ctx context.Context, id, code string) error {
	update := bson.M{
		"$set": bson.M{
			"verification_code": code,
			"updated_at":        time.Now(),
		},
	}
	result, err := r.db.Collection("accounts").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Database error saving verification code", zap.String("accountID", id), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// MarkVerified flips the account to verified and clears the stored code so
// the "code non-null only while unverified" invariant holds.
func (r *AccountRepository) MarkVerified(ctx context.Context, id string) error {
	update := bson.M{
		"$set": bson.M{
			"is_verified": true,
			"updated_at":  time.Now(),
		},
		"$unset": bson.M{
			"verification_code": "",
		},
	}
	result, err := r.db.Collection("accounts").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Database error marking account verified", zap.String("accountID", id), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	r.logger.Info("Account verified", zap.String("accountID", id))
	return nil
}

// List returns all accounts newest-first, for the admin dashboard.
func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection("accounts").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Database error listing accounts", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*entity.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		r.logger.Error("Error decoding account list", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id, role string) error {
	update := bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}}
	result, err := r.db.Collection("accounts").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Database error updating role", zap.String("accountID", id), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	r.logger.Info("Account role updated", zap.String("accountID", id), zap.String("role", role))
	return nil
}
