package usecase

import (
	"context"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
)

// Repository ports consumed by the pipelines. The mongo implementations live
// in internal/repository; tests substitute testify mocks.

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	SetVerificationCode(ctx context.Context, id, code string) error
	MarkVerified(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Account, error)
	UpdateRole(ctx context.Context, id, role string) error
}

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	CreateAssignment(ctx context.Context, assignment *entity.Assignment) error
	ListByProvider(ctx context.Context, providerID string) ([]*entity.Lead, error)
	RecentByProvider(ctx context.Context, providerID string, limit int64) ([]*entity.Lead, error)
	ListAll(ctx context.Context) ([]*entity.Lead, error)
}

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetForProvider(ctx context.Context, id, providerID string) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id, providerID string) error
	ListByProvider(ctx context.Context, providerID string) ([]*entity.Quote, error)
}

// Publisher emits domain events. Publishing is best-effort: a failure is
// logged and never fails the primary operation.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}
