package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup removes fixture hospitals created by end-to-end runs. The
// route is not registered in production.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	dryRun, err := parseOptionalBool(c.Query("dry_run"))
	if err != nil {
		AbortWithError(c, newValidationError("dry_run", "invalid_bool", "invalid dry_run"))
		return
	}

	ctx := c.Request.Context()
	hospitalIDs, err := s.loadHospitalIDsByPrefix(ctx, prefix)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if dryRun != nil && *dryRun {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "matched": len(hospitalIDs)})
		return
	}
	if err := s.deleteHospitalData(ctx, hospitalIDs); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "matched": len(hospitalIDs)})
}

func (s *Server) loadHospitalIDsByPrefix(ctx context.Context, prefix string) ([]int64, error) {
	like := strings.TrimSpace(prefix) + "%"
	var hospitalIDs []int64
	if err := s.db.WithContext(ctx).
		Table("hospitals").
		Select("id").
		Where("name LIKE ?", like).
		Scan(&hospitalIDs).Error; err != nil {
		return nil, err
	}
	return hospitalIDs, nil
}

func (s *Server) deleteHospitalData(ctx context.Context, hospitalIDs []int64) error {
	if len(hospitalIDs) == 0 {
		return nil
	}
	queries := []string{
		`DELETE FROM sessions WHERE user_id IN (SELECT id FROM users WHERE hospital_id IN ?)`,
		`DELETE FROM users WHERE hospital_id IN ?`,
		`DELETE FROM recovery_events WHERE hospital_id IN ?`,
		`DELETE FROM audit_logs WHERE hospital_id IN ?`,
		`DELETE FROM follow_ups WHERE hospital_id IN ?`,
		`DELETE FROM message_templates WHERE hospital_id IN ?`,
		`DELETE FROM contacts WHERE hospital_id IN ?`,
		`DELETE FROM bills WHERE hospital_id IN ?`,
		`DELETE FROM visits WHERE hospital_id IN ?`,
		`DELETE FROM patients WHERE hospital_id IN ?`,
		`DELETE FROM hospitals WHERE id IN ?`,
	}
	for _, query := range queries {
		if err := s.db.WithContext(ctx).Exec(query, hospitalIDs).Error; err != nil {
			return err
		}
	}
	return nil
}
