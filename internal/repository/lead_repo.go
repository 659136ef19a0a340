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

var ErrLeadNotFound = errors.New("lead not found")

// LeadRepository persists leads and their provider assignments. A provider
// only ever sees leads joined through the "lead_assignments" collection.
type LeadRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewLeadRepository(db *mongo.Database, logger *zap.Logger) *LeadRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection("lead_assignments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "lead_id", Value: 1}},
	})
	if err != nil {
		logger.Warn("Failed to create assignment index (may already exist)", zap.Error(err))
	}

	return &LeadRepository{
		db:     db,
		logger: logger.Named("LeadRepository"),
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	lead.CreatedAt = time.Now()

	_, err := r.db.Collection("leads").InsertOne(ctx, lead)
	if err != nil {
		r.logger.Error("Database error during lead creation", zap.Error(err))
		return err
	}
	r.logger.Info("Lead created", zap.String("leadID", lead.ID), zap.String("sector", lead.Sector))
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.Collection("leads").FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		r.logger.Error("Database error fetching lead", zap.String("leadID", id), zap.Error(err))
		return nil, err
	}
	return &lead, nil
}

// UpdateFields applies an already-whitelisted field set to a lead.
func (r *LeadRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.db.Collection("leads").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("Database error during lead update", zap.String("leadID", id), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrLeadNotFound
	}
	r.logger.Info("Lead updated", zap.String("leadID", id))
	return nil
}

// CreateAssignment binds a lead to a provider. Assignments are immutable.
func (r *LeadRepository) CreateAssignment(ctx context.Context, assignment *entity.Assignment) error {
	assignment.CreatedAt = time.Now()

	_, err := r.db.Collection("lead_assignments").InsertOne(ctx, assignment)
	if err != nil {
		r.logger.Error("Database error during assignment creation",
			zap.String("leadID", assignment.LeadID),
			zap.String("providerID", assignment.ProviderID),
			zap.Error(err))
		return err
	}
	r.logger.Info("Lead assigned",
		zap.String("leadID", assignment.LeadID),
		zap.String("providerID", assignment.ProviderID))
	return nil
}

// ListByProvider returns the leads assigned to a provider, newest-first.
func (r *LeadRepository) ListByProvider(ctx context.Context, providerID string) ([]*entity.Lead, error) {
	return r.listByProvider(ctx, providerID, 0)
}

// RecentByProvider returns at most limit assigned leads, newest-first.
func (r *LeadRepository) RecentByProvider(ctx context.Context, providerID string, limit int64) ([]*entity.Lead, error) {
	return r.listByProvider(ctx, providerID, limit)
}

func (r *LeadRepository) listByProvider(ctx context.Context, providerID string, limit int64) ([]*entity.Lead, error) {
	cursor, err := r.db.Collection("lead_assignments").Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		r.logger.Error("Database error listing assignments", zap.String("providerID", providerID), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*entity.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		r.logger.Error("Error decoding assignments", zap.Error(err))
		return nil, err
	}
	if len(assignments) == 0 {
		return []*entity.Lead{}, nil
	}

	leadIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		leadIDs = append(leadIDs, a.LeadID)
	}

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	leadCursor, err := r.db.Collection("leads").Find(ctx, bson.M{"_id": bson.M{"$in": leadIDs}}, findOptions)
	if err != nil {
		r.logger.Error("Database error listing leads by provider", zap.String("providerID", providerID), zap.Error(err))
		return nil, err
	}
	defer leadCursor.Close(ctx)

	var leads []*entity.Lead
	if err := leadCursor.All(ctx, &leads); err != nil {
		r.logger.Error("Error decoding leads", zap.Error(err))
		return nil, err
	}
	return leads, nil
}

// ListAll returns every lead newest-first, for the admin dashboard.
func (r *LeadRepository) ListAll(ctx context.Context) ([]*entity.Lead, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection("leads").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Database error listing all leads", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []*entity.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		r.logger.Error("Error decoding lead list", zap.Error(err))
		return nil, err
	}
	return leads, nil
}
