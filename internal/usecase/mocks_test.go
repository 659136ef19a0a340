package usecase

import (
	"context"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/mailer"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}
func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}
func (m *MockAccountRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
func (m *MockAccountRepository) SetVerificationCode(ctx context.Context, id, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}
func (m *MockAccountRepository) MarkVerified(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Account), args.Error(1)
}
func (m *MockAccountRepository) UpdateRole(ctx context.Context, id, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

type MockLeadRepository struct{ mock.Mock }

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}
func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}
func (m *MockLeadRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
func (m *MockLeadRepository) CreateAssignment(ctx context.Context, assignment *entity.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}
func (m *MockLeadRepository) ListByProvider(ctx context.Context, providerID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}
func (m *MockLeadRepository) RecentByProvider(ctx context.Context, providerID string, limit int64) ([]*entity.Lead, error) {
	args := m.Called(ctx, providerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}
func (m *MockLeadRepository) ListAll(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
func (m *MockQuoteRepository) GetForProvider(ctx context.Context, id, providerID string) (*entity.Quote, error) {
	args := m.Called(ctx, id, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quote), args.Error(1)
}
func (m *MockQuoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
func (m *MockQuoteRepository) Delete(ctx context.Context, id, providerID string) error {
	args := m.Called(ctx, id, providerID)
	return args.Error(0)
}
func (m *MockQuoteRepository) ListByProvider(ctx context.Context, providerID string) ([]*entity.Quote, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Quote), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendActivationEmail(toEmail, toName, code string) error {
	args := m.Called(toEmail, toName, code)
	return args.Error(0)
}
func (m *MockMailer) SendLeadConfirmation(toEmail, toName string, details mailer.LeadDetails) error {
	args := m.Called(toEmail, toName, details)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}
