package entity

import "time"

// Account is a registered provider (or admin) on the marketplace.
type Account struct {
	ID               string    `json:"id" bson:"_id"`
	Email            string    `json:"email" bson:"email"`
	Password         string    `json:"-" bson:"password"` // bcrypt hash
	FirstName        string    `json:"first_name" bson:"first_name"`
	LastName         string    `json:"last_name" bson:"last_name"`
	CompanyName      string    `json:"company_name,omitempty" bson:"company_name,omitempty"`
	Siret            string    `json:"siret,omitempty" bson:"siret,omitempty"`
	Role             string    `json:"role" bson:"role"`
	CreationYear     string    `json:"creation_year,omitempty" bson:"creation_year,omitempty"`
	Address          string    `json:"address,omitempty" bson:"address,omitempty"`
	Zip              string    `json:"zip,omitempty" bson:"zip,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	Phone            string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Sectors          []string  `json:"sectors,omitempty" bson:"sectors,omitempty"`
	LegalForm        string    `json:"legal_form,omitempty" bson:"legal_form,omitempty"`
	Description      string    `json:"description,omitempty" bson:"description,omitempty"`
	Zone             string    `json:"zone,omitempty" bson:"zone,omitempty"`
	VerificationCode string    `json:"-" bson:"verification_code,omitempty"`
	IsVerified       bool      `json:"is_verified" bson:"is_verified"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

const (
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)
