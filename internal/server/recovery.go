package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPayerSummaries returns per-payer aggregates for the dashboard cards.
func (s *Server) GetPayerSummaries(c *gin.Context) {
	if s.recoverySvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	resp, err := s.recoverySvc.PayerSummaries(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeCSV(c, "payers.csv", &resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetRecoverySummary returns the hospital-wide recovery metrics.
func (s *Server) GetRecoverySummary(c *gin.Context) {
	if s.recoverySvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	resp, err := s.recoverySvc.Summary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeCSV(c, "summary.csv", &resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
