package entity

import "time"

// Quote statuses. The set is open: any owning provider may set any of these
// at any time, there is no enforced transition graph. Creation always starts
// at attente_client.
const (
	QuoteStatusAttenteClient = "attente_client"
	QuoteStatusTraitement    = "traitement"
	QuoteStatusModification  = "modification"
	QuoteStatusSigne         = "signe"
	QuoteStatusRefuse        = "refuse"
)

const DefaultQuoteProjectName = "Nouveau Projet"

// Quote is a provider's offer against a prospect. Every read and mutation is
// scoped by ProviderID.
type Quote struct {
	ID          string    `json:"id" bson:"_id"`
	ProviderID  string    `json:"provider_id" bson:"provider_id"`
	ClientName  string    `json:"client_name" bson:"client_name"`
	ProjectName string    `json:"project_name" bson:"project_name"`
	Amount      float64   `json:"amount" bson:"amount"`
	ItemsCount  int       `json:"items_count" bson:"items_count"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
