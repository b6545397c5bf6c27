package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	contactdomain "github.com/zerorisk/claimledger/internal/contact/domain"
)

func (s *Server) ListContacts(c *gin.Context) {
	if s.contactSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	contacts, err := s.contactSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("payer_type")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": contacts})
}

func (s *Server) CreateContact(c *gin.Context) {
	if s.contactSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req contactdomain.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contact, err := s.contactSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := contact.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "contact.create", "contact", &targetID, map[string]any{
			"contact_id": contact.ID.String(),
			"payer_type": contact.PayerType,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": contact})
}

func (s *Server) UpdateContact(c *gin.Context) {
	if s.contactSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	var req contactdomain.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contact, err := s.contactSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := contact.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "contact.update", "contact", &targetID, nil)
	}

	c.JSON(http.StatusOK, gin.H{"data": contact})
}

func (s *Server) DeleteContact(c *gin.Context) {
	if s.contactSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := s.contactSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "contact.delete", "contact", &id, nil)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
