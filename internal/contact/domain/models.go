package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Contact is a payer-side or hospital-side person reachable during
// recovery follow-up.
type Contact struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	HospitalID snowflake.ID `gorm:"not null;index" json:"hospital_id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	PayerType  string       `gorm:"type:text;not null;default:''" json:"payer_type"`
	Phone      string       `gorm:"type:text;not null;default:''" json:"phone"`
	Email      string       `gorm:"type:text;not null;default:''" json:"email"`
	Notes      string       `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Contact) TableName() string { return "contacts" }

// Store is the injected contact repository. The browser build of the
// source system kept these rows in local storage; here they live behind
// the same get/list/put/delete surface backed by the database.
type Store interface {
	Get(ctx context.Context, hospitalID, id snowflake.ID) (*Contact, error)
	List(ctx context.Context, hospitalID snowflake.ID, payerType string) ([]Contact, error)
	Put(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, hospitalID, id snowflake.ID) error
}

type CreateContactRequest struct {
	Name      string `json:"name"`
	PayerType string `json:"payer_type"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

type Service interface {
	Create(ctx context.Context, req CreateContactRequest) (*Contact, error)
	Update(ctx context.Context, id string, req CreateContactRequest) (*Contact, error)
	List(ctx context.Context, payerType string) ([]Contact, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidHospital = errors.New("invalid_hospital")
	ErrInvalidID       = errors.New("invalid_contact_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrContactNotFound = errors.New("contact_not_found")
)
