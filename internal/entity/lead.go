package entity

import "time"

// Lead statuses. The pipeline is one-way: pending leads become processed and
// never regress.
const (
	LeadStatusPending   = "pending"
	LeadStatusProcessed = "processed"
)

// Defaults applied when an incoming request omits the field.
const (
	DefaultLeadSector   = "Général"
	DefaultLeadTimeSlot = "Non spécifié"
)

// Lead is a service request submitted by an end-user. It is owned by no one
// until an Assignment binds it to a provider.
type Lead struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone" bson:"phone"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	Sector    string    `json:"sector" bson:"sector"`
	Need      string    `json:"need,omitempty" bson:"need,omitempty"`
	Budget    float64   `json:"budget" bson:"budget"`
	TimeSlot  string    `json:"time_slot" bson:"time_slot"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Assignment links a lead to a provider. Immutable once created; a lead may
// carry several assignments over time, a provider only sees assigned leads.
type Assignment struct {
	ID         string    `json:"id" bson:"_id"`
	LeadID     string    `json:"lead_id" bson:"lead_id"`
	ProviderID string    `json:"provider_id" bson:"provider_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
