package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/zerorisk/claimledger/internal/auth/domain"
	"github.com/zerorisk/claimledger/internal/auth/password"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
	obscontext "github.com/zerorisk/claimledger/internal/observability/context"
)

const (
	contextUserIDKey   = "user_id"
	contextUserRoleKey = "user_role"

	sessionTTL = 24 * time.Hour
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer session token.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		AbortWithError(c, authdomain.ErrInvalidCredentials)
		return
	}

	var user authdomain.User
	err := s.db.WithContext(c.Request.Context()).
		Where("username = ?", username).
		First(&user).Error
	if err != nil || !password.Verify(req.Password, user.PasswordHash) {
		AbortWithError(c, authdomain.ErrInvalidCredentials)
		return
	}

	token, err := newSessionToken()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	now := time.Now().UTC()
	session := authdomain.Session{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&session).Error; err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": session.ExpiresAt,
		"role":       user.Role,
	})
}

// SessionRequired authenticates the bearer token and scopes the request
// to the user's hospital.
func (s *Server) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		now := time.Now().UTC()
		var record struct {
			UserID     snowflake.ID `gorm:"column:user_id"`
			HospitalID snowflake.ID `gorm:"column:hospital_id"`
			Role       string       `gorm:"column:role"`
			ExpiresAt  time.Time    `gorm:"column:expires_at"`
		}
		err := s.db.WithContext(c.Request.Context()).Raw(
			`SELECT sessions.user_id, sessions.expires_at, users.hospital_id, users.role
			 FROM sessions
			 JOIN users ON users.id = sessions.user_id
			 WHERE sessions.token = ?
			 LIMIT 1`,
			parts[1],
		).Scan(&record).Error
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if record.UserID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if record.ExpiresAt.Before(now) {
			AbortWithError(c, authdomain.ErrSessionExpired)
			return
		}

		c.Set(contextUserIDKey, record.UserID.String())
		c.Set(contextUserRoleKey, record.Role)

		ctx := c.Request.Context()
		ctx = hospitalcontext.WithHospitalID(ctx, record.HospitalID)
		ctx = hospitalcontext.WithUser(ctx, record.UserID, record.Role)
		ctx = obscontext.WithHospitalID(ctx, record.HospitalID.String())
		ctx = obscontext.WithActor(ctx, "user", record.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RoleRequired gates a route group to the given roles.
func (s *Server) RoleRequired(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		role := hospitalcontext.RoleFromContext(c.Request.Context())
		if _, ok := allowed[role]; !ok {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
