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

// ErrQuoteNotFound collapses "no such quote" and "quote owned by someone
// else": every query is scoped by provider_id, so the two cases are
// indistinguishable here on purpose.
var ErrQuoteNotFound = errors.New("quote not found or not owned by caller")

type QuoteRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewQuoteRepository(db *mongo.Database, logger *zap.Logger) *QuoteRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection("quotes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		logger.Warn("Failed to create quote index (may already exist)", zap.Error(err))
	}

	return &QuoteRepository{
		db:     db,
		logger: logger.Named("QuoteRepository"),
	}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now

	_, err := r.db.Collection("quotes").InsertOne(ctx, quote)
	if err != nil {
		r.logger.Error("Database error during quote creation",
			zap.String("providerID", quote.ProviderID), zap.Error(err))
		return err
	}
	r.logger.Info("Quote created", zap.String("quoteID", quote.ID), zap.String("providerID", quote.ProviderID))
	return nil
}

func (r *QuoteRepository) GetForProvider(ctx context.Context, id, providerID string) (*entity.Quote, error) {
	var quote entity.Quote
	filter := bson.M{"_id": id, "provider_id": providerID}
	err := r.db.Collection("quotes").FindOne(ctx, filter).Decode(&quote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuoteNotFound
		}
		r.logger.Error("Database error fetching quote", zap.String("quoteID", id), zap.Error(err))
		return nil, err
	}
	return &quote, nil
}

// Update rewrites the mutable quote fields, still scoped by owner.
func (r *QuoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	quote.UpdatedAt = time.Now()
	filter := bson.M{"_id": quote.ID, "provider_id": quote.ProviderID}
	update := bson.M{"$set": bson.M{
		"client_name":  quote.ClientName,
		"project_name": quote.ProjectName,
		"amount":       quote.Amount,
		"items_count":  quote.ItemsCount,
		"status":       quote.Status,
		"updated_at":   quote.UpdatedAt,
	}}

	result, err := r.db.Collection("quotes").UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Database error during quote update", zap.String("quoteID", quote.ID), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrQuoteNotFound
	}
	r.logger.Info("Quote updated", zap.String("quoteID", quote.ID), zap.String("status", quote.Status))
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id, providerID string) error {
	filter := bson.M{"_id": id, "provider_id": providerID}
	result, err := r.db.Collection("quotes").DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Database error during quote deletion", zap.String("quoteID", id), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrQuoteNotFound
	}
	r.logger.Info("Quote deleted", zap.String("quoteID", id))
	return nil
}

// ListByProvider returns a provider's quotes, newest-first.
func (r *QuoteRepository) ListByProvider(ctx context.Context, providerID string) ([]*entity.Quote, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection("quotes").Find(ctx, bson.M{"provider_id": providerID}, findOptions)
	if err != nil {
		r.logger.Error("Database error listing quotes", zap.String("providerID", providerID), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var quotes []*entity.Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		r.logger.Error("Error decoding quote list", zap.Error(err))
		return nil, err
	}
	return quotes, nil
}
