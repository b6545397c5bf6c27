package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// FollowUpStatus tracks whether a recovery follow-up still needs action.
type FollowUpStatus string

const (
	FollowUpStatusOpen   FollowUpStatus = "open"
	FollowUpStatusClosed FollowUpStatus = "closed"
)

// FollowUp is an action item opened when a bill stays overdue. One open
// follow-up exists per bill at a time.
type FollowUp struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	HospitalID  snowflake.ID   `gorm:"not null;index" json:"hospital_id"`
	BillID      snowflake.ID   `gorm:"not null;index" json:"bill_id"`
	Status      FollowUpStatus `gorm:"type:text;not null;default:'open'" json:"status"`
	Reason      string         `gorm:"type:text;not null" json:"reason"`
	OverdueDays int            `gorm:"not null" json:"overdue_days"`
	OpenedAt    time.Time      `gorm:"not null" json:"opened_at"`
	ClosedAt    *time.Time     `gorm:"column:closed_at" json:"closed_at,omitempty"`
	ClosedBy    *string        `gorm:"column:closed_by;type:text" json:"closed_by,omitempty"`
}

// TableName sets the database table name.
func (FollowUp) TableName() string { return "follow_ups" }

// Store is the injected follow-up repository.
type Store interface {
	List(ctx context.Context, hospitalID snowflake.ID, status FollowUpStatus) ([]FollowUp, error)
	FindOpenByBill(ctx context.Context, hospitalID, billID snowflake.ID) (*FollowUp, error)
	Put(ctx context.Context, followUp *FollowUp) error
}

type Service interface {
	List(ctx context.Context, status string) ([]FollowUp, error)
	Close(ctx context.Context, id string) (*FollowUp, error)
}

var (
	ErrInvalidHospital  = errors.New("invalid_hospital")
	ErrInvalidID        = errors.New("invalid_follow_up_id")
	ErrInvalidStatus    = errors.New("invalid_follow_up_status")
	ErrFollowUpNotFound = errors.New("follow_up_not_found")
	ErrFollowUpNotOpen  = errors.New("follow_up_not_open")
)
