package usecase

import (
	"context"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event subjects emitted by the quote pipeline.
const (
	SubjectQuoteCreated = "quote.created"
	SubjectQuoteUpdated = "quote.updated"
	SubjectQuoteDeleted = "quote.deleted"
)

// QuoteUsecase drives the quote pipeline. Every operation is scoped by the
// authenticated provider; an ownership mismatch surfaces as the collapsed
// not-found error from the repository.
type QuoteUsecase struct {
	quotes QuoteRepository
	events Publisher
	logger *zap.Logger
}

func NewQuoteUsecase(quotes QuoteRepository, events Publisher, logger *zap.Logger) *QuoteUsecase {
	return &QuoteUsecase{
		quotes: quotes,
		events: events,
		logger: logger.Named("QuoteUsecase"),
	}
}

type CreateQuoteInput struct {
	ClientName  string
	ProjectName string
	Amount      float64
	ItemsCount  int
}

// Create records a quote. Creation always starts at attente_client; the
// status set is otherwise open, there is no transition graph.
func (u *QuoteUsecase) Create(ctx context.Context, providerID string, in CreateQuoteInput) (*entity.Quote, error) {
	projectName := in.ProjectName
	if projectName == "" {
		projectName = entity.DefaultQuoteProjectName
	}
	itemsCount := in.ItemsCount
	if itemsCount == 0 {
		itemsCount = 1
	}

	quote := &entity.Quote{
		ID:          uuid.NewString(),
		ProviderID:  providerID,
		ClientName:  in.ClientName,
		ProjectName: projectName,
		Amount:      in.Amount,
		ItemsCount:  itemsCount,
		Status:      entity.QuoteStatusAttenteClient,
	}
	if err := u.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	u.publish(ctx, SubjectQuoteCreated, quote)
	return quote, nil
}

// UpdateQuoteInput uses pointers so an absent field keeps the stored value.
type UpdateQuoteInput struct {
	ClientName  *string
	ProjectName *string
	Amount      *float64
	ItemsCount  *int
	Status      *string
}

// Update merges the supplied fields over the stored quote. The owning read
// happens first, so a mismatched provider performs no mutation at all.
func (u *QuoteUsecase) Update(ctx context.Context, providerID, id string, in UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := u.quotes.GetForProvider(ctx, id, providerID)
	if err != nil {
		return nil, err
	}

	if in.ClientName != nil {
		quote.ClientName = *in.ClientName
	}
	if in.ProjectName != nil {
		quote.ProjectName = *in.ProjectName
	}
	if in.Amount != nil {
		quote.Amount = *in.Amount
	}
	if in.ItemsCount != nil {
		quote.ItemsCount = *in.ItemsCount
	}
	if in.Status != nil {
		quote.Status = *in.Status
	}

	if err := u.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	u.publish(ctx, SubjectQuoteUpdated, quote)
	return quote, nil
}

func (u *QuoteUsecase) Delete(ctx context.Context, providerID, id string) error {
	if err := u.quotes.Delete(ctx, id, providerID); err != nil {
		return err
	}
	u.publish(ctx, SubjectQuoteDeleted, map[string]string{"id": id, "provider_id": providerID})
	return nil
}

// ListByProvider returns the caller's quotes, newest-first.
func (u *QuoteUsecase) ListByProvider(ctx context.Context, providerID string) ([]*entity.Quote, error) {
	return u.quotes.ListByProvider(ctx, providerID)
}

func (u *QuoteUsecase) publish(ctx context.Context, subject string, data interface{}) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, subject, data); err != nil {
		u.logger.Warn("Event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
