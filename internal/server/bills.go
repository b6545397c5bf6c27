package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	obslogger "github.com/zerorisk/claimledger/internal/observability/logger"
	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
)

// ListBills returns one filtered page of enriched bills. format=csv
// streams the page as a spreadsheet instead.
func (s *Server) ListBills(c *gin.Context) {
	if s.recoverySvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var query struct {
		PayerType string `form:"payer_type"`
		Status    string `form:"status"`
		Search    string `form:"q"`
		Limit     string `form:"limit"`
		Offset    string `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit, err := parseOptionalInt(query.Limit)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}
	offset, err := parseOptionalInt(query.Offset)
	if err != nil {
		AbortWithError(c, newValidationError("offset", "invalid_offset", "invalid offset"))
		return
	}

	req := recoverydomain.ListBillsRequest{
		PayerType: strings.TrimSpace(query.PayerType),
		Status:    strings.TrimSpace(query.Status),
		Search:    strings.TrimSpace(query.Search),
	}
	if limit != nil {
		req.Limit = *limit
	}
	if offset != nil {
		req.Offset = *offset
	}

	resp, err := s.recoverySvc.ListBills(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeCSV(c, "bills.csv", &resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateBill stores one manually entered claim.
func (s *Server) CreateBill(c *gin.Context) {
	if s.billSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req billdomain.BillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	bill, err := s.billSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := bill.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "bill.create", "bill", &targetID, map[string]any{
			"bill_id":     bill.ID.String(),
			"patient":     obslogger.MaskPatientName(req.PatientName),
			"payer_type":  bill.PayerType,
			"bill_amount": bill.BillAmount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": bill})
}

type importBillsRequest struct {
	Rows []billdomain.BillInput `json:"rows"`
}

// ImportBills stores a batch of rows already structured by the external
// extraction step.
func (s *Server) ImportBills(c *gin.Context) {
	if s.billSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req importBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.billSvc.Import(c.Request.Context(), req.Rows)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "bill.import", "bill", nil, map[string]any{
			"count": result.Created,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// UpdateBill patches payment progress onto a claim.
func (s *Server) UpdateBill(c *gin.Context) {
	if s.billSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	var req billdomain.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	bill, err := s.billSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := bill.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), nil, "", nil, "bill.update", "bill", &targetID, map[string]any{
			"bill_id": bill.ID.String(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": bill})
}
