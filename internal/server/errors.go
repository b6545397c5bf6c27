package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/zerorisk/claimledger/internal/auth/domain"
	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	contactdomain "github.com/zerorisk/claimledger/internal/contact/domain"
	followupdomain "github.com/zerorisk/claimledger/internal/followup/domain"
	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
	templatedomain "github.com/zerorisk/claimledger/internal/template/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

var (
	ErrUnauthorized       = &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "authentication required"}
	ErrForbidden          = &apiError{Status: http.StatusForbidden, Code: "forbidden", Message: "insufficient role"}
	ErrNotFound           = &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
	ErrTooManyRequests    = &apiError{Status: http.StatusTooManyRequests, Code: "rate_limited", Message: "too many requests"}
	ErrServiceUnavailable = &apiError{Status: http.StatusServiceUnavailable, Code: "service_unavailable", Message: "service unavailable"}
)

func invalidRequestError() error {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "malformed request body"}
}

func newValidationError(field, code, message string) error {
	return &apiError{Status: http.StatusBadRequest, Code: code, Field: field, Message: message}
}

// AbortWithError maps domain sentinels onto HTTP statuses and writes a
// JSON error body.
func AbortWithError(c *gin.Context, err error) {
	var typed *apiError
	if errors.As(err, &typed) {
		c.AbortWithStatusJSON(typed.Status, gin.H{"error": typed})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case isUnauthorizedError(err):
		status = http.StatusUnauthorized
		code = err.Error()
	case isNotFoundError(err):
		status = http.StatusNotFound
		code = err.Error()
	case isValidationError(err):
		status = http.StatusBadRequest
		code = err.Error()
	}

	message := "internal error"
	if status != http.StatusInternalServerError {
		message = code
	}
	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{Status: status, Code: code, Message: message}})
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, recoverydomain.ErrInvalidHospital),
		errors.Is(err, billdomain.ErrInvalidHospital),
		errors.Is(err, contactdomain.ErrInvalidHospital),
		errors.Is(err, templatedomain.ErrInvalidHospital),
		errors.Is(err, followupdomain.ErrInvalidHospital),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionExpired):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, billdomain.ErrBillNotFound),
		errors.Is(err, contactdomain.ErrContactNotFound),
		errors.Is(err, templatedomain.ErrTemplateNotFound),
		errors.Is(err, followupdomain.ErrFollowUpNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, recoverydomain.ErrInvalidStatus),
		errors.Is(err, recoverydomain.ErrInvalidLimit),
		errors.Is(err, recoverydomain.ErrInvalidOffset),
		errors.Is(err, billdomain.ErrInvalidBillID),
		errors.Is(err, billdomain.ErrInvalidAmount),
		errors.Is(err, billdomain.ErrInvalidVisit),
		errors.Is(err, billdomain.ErrInvalidPatient),
		errors.Is(err, billdomain.ErrEmptyImport),
		errors.Is(err, contactdomain.ErrInvalidID),
		errors.Is(err, contactdomain.ErrInvalidName),
		errors.Is(err, templatedomain.ErrInvalidID),
		errors.Is(err, templatedomain.ErrInvalidName),
		errors.Is(err, templatedomain.ErrInvalidChannel),
		errors.Is(err, templatedomain.ErrInvalidBody),
		errors.Is(err, followupdomain.ErrInvalidID),
		errors.Is(err, followupdomain.ErrInvalidStatus),
		errors.Is(err, followupdomain.ErrFollowUpNotOpen):
		return true
	default:
		return false
	}
}
