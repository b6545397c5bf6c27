package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Roles recognised by the authorization middleware. super_admin spans
// hospitals; the other two are scoped to one.
const (
	RoleSuperAdmin    = "super_admin"
	RoleHospitalAdmin = "hospital_admin"
	RoleStaff         = "staff"
)

// Hospital is a tenant. Every claim row hangs off one hospital.
type Hospital struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Hospital) TableName() string { return "hospitals" }

// User is a login identity bound to a hospital and a role.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	HospitalID   snowflake.ID `gorm:"not null;index"`
	Username     string       `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string       `gorm:"type:text;not null"`
	Role         string       `gorm:"type:text;not null;default:'staff'"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session is a bearer token issued at login.
type Session struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"not null;index"`
	Token     string       `gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time    `gorm:"not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// ValidRole reports whether role is one the middleware understands.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleHospitalAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
)
