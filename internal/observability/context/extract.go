package context

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zerorisk/claimledger/internal/hospitalcontext"
)

func RequestIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if ctx := c.Request.Context(); ctx != nil {
		if value := RequestIDFromContext(ctx); value != "" {
			return value
		}
	}
	if value := strings.TrimSpace(c.GetString("request_id")); value != "" {
		return value
	}
	return ""
}

func HospitalIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	ctx := c.Request.Context()
	if ctx == nil {
		return ""
	}
	if value := HospitalIDFromContext(ctx); value != "" {
		return value
	}
	if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
		return hospitalID.String()
	}
	return ""
}

func ActorFromGin(c *gin.Context) (string, string) {
	if c == nil {
		return "", ""
	}
	return ActorFromContext(c.Request.Context())
}
