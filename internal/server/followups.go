package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListFollowUps(c *gin.Context) {
	if s.followUpSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	followUps, err := s.followUpSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": followUps})
}

func (s *Server) CloseFollowUp(c *gin.Context) {
	if s.followUpSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	followUp, err := s.followUpSvc.Close(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := followUp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "followup.close", "followup", &targetID, map[string]any{
			"bill_id": followUp.BillID.String(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": followUp})
}
