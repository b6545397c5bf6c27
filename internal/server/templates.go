package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	templatedomain "github.com/zerorisk/claimledger/internal/template/domain"
)

func (s *Server) ListTemplates(c *gin.Context) {
	if s.templateSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	templates, err := s.templateSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": templates})
}

func (s *Server) CreateTemplate(c *gin.Context) {
	if s.templateSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req templatedomain.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	template, err := s.templateSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := template.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "template.create", "template", &targetID, map[string]any{
			"template_id": template.ID.String(),
			"channel":     string(template.Channel),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": template})
}

type renderTemplateRequest struct {
	PatientName string `json:"patient_name"`
	PayerType   string `json:"payer_type"`
	ClaimID     string `json:"claim_id"`
	BillAmount  string `json:"bill_amount"`
	OverdueDays int    `json:"overdue_days"`
	Hospital    string `json:"hospital"`
}

// RenderTemplate previews a template against caller-supplied values.
func (s *Server) RenderTemplate(c *gin.Context) {
	if s.templateSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	var req renderTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rendered, err := s.templateSvc.Render(c.Request.Context(), id, templatedomain.RenderContext{
		PatientName: req.PatientName,
		PayerType:   req.PayerType,
		ClaimID:     req.ClaimID,
		BillAmount:  req.BillAmount,
		OverdueDays: req.OverdueDays,
		Hospital:    req.Hospital,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rendered})
}

func (s *Server) DeleteTemplate(c *gin.Context) {
	if s.templateSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := s.templateSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "template.delete", "template", &id, nil)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
