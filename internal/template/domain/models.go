package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Channel is the outbound medium a template is written for. Delivery itself
// happens outside this service; templates only shape the message text.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// MessageTemplate is a reusable follow-up message with bill placeholders.
type MessageTemplate struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	HospitalID snowflake.ID `gorm:"not null;index" json:"hospital_id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	Channel    Channel      `gorm:"type:text;not null;default:'email'" json:"channel"`
	Subject    string       `gorm:"type:text;not null;default:''" json:"subject"`
	Body       string       `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (MessageTemplate) TableName() string { return "message_templates" }

// RenderContext carries the placeholder values available to a template.
type RenderContext struct {
	PatientName string
	PayerType   string
	ClaimID     string
	BillAmount  string
	OverdueDays int
	Hospital    string
}

type CreateTemplateRequest struct {
	Name    string  `json:"name"`
	Channel Channel `json:"channel"`
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
}

type RenderedMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Service interface {
	Create(ctx context.Context, req CreateTemplateRequest) (*MessageTemplate, error)
	List(ctx context.Context) ([]MessageTemplate, error)
	Render(ctx context.Context, id string, rc RenderContext) (RenderedMessage, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidHospital  = errors.New("invalid_hospital")
	ErrInvalidID        = errors.New("invalid_template_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidChannel   = errors.New("invalid_channel")
	ErrInvalidBody      = errors.New("invalid_body")
	ErrTemplateNotFound = errors.New("template_not_found")
)
