package usecase

import (
	"context"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/mailer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// leadUpdatableFields is the lead-update whitelist.
var leadUpdatableFields = map[string]bool{
	"name":      true,
	"email":     true,
	"phone":     true,
	"address":   true,
	"sector":    true,
	"need":      true,
	"budget":    true,
	"status":    true,
	"time_slot": true,
}

// Event subjects emitted by the lead pipeline.
const (
	SubjectLeadCreated  = "lead.created"
	SubjectLeadAssigned = "lead.assigned"
)

// LeadUsecase drives lead intake and the assignment flow.
type LeadUsecase struct {
	leads  LeadRepository
	mailer mailer.Mailer
	events Publisher
	logger *zap.Logger
}

func NewLeadUsecase(leads LeadRepository, m mailer.Mailer, events Publisher, logger *zap.Logger) *LeadUsecase {
	return &LeadUsecase{
		leads:  leads,
		mailer: m,
		events: events,
		logger: logger.Named("LeadUsecase"),
	}
}

type CreateLeadInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Sector   string
	Need     string
	TimeSlot string
	Budget   float64
}

// CreateLeadResult reports the confirmation-email outcome alongside the
// committed lead; dispatch failure never reverses the insert.
type CreateLeadResult struct {
	Lead      *entity.Lead
	EmailSent bool
}

// CreateManualResult flags the partial-failure case where the lead committed
// but the assignment insert failed.
type CreateManualResult struct {
	Lead     *entity.Lead
	Assigned bool
}

func (u *LeadUsecase) buildLead(in CreateLeadInput) *entity.Lead {
	sector := in.Sector
	if sector == "" {
		sector = entity.DefaultLeadSector
	}
	timeSlot := in.TimeSlot
	if timeSlot == "" {
		timeSlot = entity.DefaultLeadTimeSlot
	}

	return &entity.Lead{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		Sector:   sector,
		Need:     in.Need,
		Budget:   in.Budget,
		TimeSlot: timeSlot,
		Status:   entity.LeadStatusPending,
	}
}

// Create records an end-user submission and acknowledges it by email when an
// address was supplied.
func (u *LeadUsecase) Create(ctx context.Context, in CreateLeadInput) (*CreateLeadResult, error) {
	lead := u.buildLead(in)
	if err := u.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	u.publish(ctx, SubjectLeadCreated, lead)

	emailSent := true
	if lead.Email != "" {
		if err := u.mailer.SendLeadConfirmation(lead.Email, lead.Name, mailer.LeadDetails{
			Need:     lead.Need,
			TimeSlot: lead.TimeSlot,
			Phone:    lead.Phone,
		}); err != nil {
			u.logger.Warn("Lead confirmation email dispatch failed",
				zap.String("leadID", lead.ID), zap.Error(err))
			emailSent = false
		}
	}

	return &CreateLeadResult{Lead: lead, EmailSent: emailSent}, nil
}

// CreateManual records a lead entered by a provider and immediately assigns
// it to them. When the assignment insert fails after the lead committed, the
// result reports the partial failure instead of rolling back.
func (u *LeadUsecase) CreateManual(ctx context.Context, providerID string, in CreateLeadInput) (*CreateManualResult, error) {
	lead := u.buildLead(in)
	if err := u.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	u.publish(ctx, SubjectLeadCreated, lead)

	assignment := &entity.Assignment{
		ID:         uuid.NewString(),
		LeadID:     lead.ID,
		ProviderID: providerID,
	}
	if err := u.leads.CreateAssignment(ctx, assignment); err != nil {
		u.logger.Error("Lead committed but assignment failed",
			zap.String("leadID", lead.ID),
			zap.String("providerID", providerID),
			zap.Error(err))
		return &CreateManualResult{Lead: lead, Assigned: false}, nil
	}
	u.publish(ctx, SubjectLeadAssigned, assignment)

	return &CreateManualResult{Lead: lead, Assigned: true}, nil
}

func (u *LeadUsecase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return u.leads.GetByID(ctx, id)
}

// Update applies the whitelisted subset of fields; a request with no
// whitelisted key at all is rejected.
func (u *LeadUsecase) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	filtered := make(map[string]interface{})
	for k, v := range fields {
		if leadUpdatableFields[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return ErrNoValidFields
	}
	return u.leads.UpdateFields(ctx, id, filtered)
}

// ListByProvider returns the calling provider's assigned leads, newest-first.
func (u *LeadUsecase) ListByProvider(ctx context.Context, providerID string) ([]*entity.Lead, error) {
	return u.leads.ListByProvider(ctx, providerID)
}

// AdminListAll returns every lead for the admin dashboard.
func (u *LeadUsecase) AdminListAll(ctx context.Context, callerRole string) ([]*entity.Lead, error) {
	if callerRole != entity.RoleAdmin {
		return nil, ErrAdminRequired
	}
	return u.leads.ListAll(ctx)
}

func (u *LeadUsecase) publish(ctx context.Context, subject string, data interface{}) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, subject, data); err != nil {
		u.logger.Warn("Event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
