package hospitalcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey string

const (
	hospitalIDKey contextKey = "hospital_id"
	userIDKey     contextKey = "user_id"
	userRoleKey   contextKey = "user_role"
)

func WithHospitalID(ctx context.Context, hospitalID snowflake.ID) context.Context {
	if hospitalID == 0 {
		return ctx
	}
	return context.WithValue(ctx, hospitalIDKey, hospitalID)
}

func HospitalIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	value, ok := ctx.Value(hospitalIDKey).(snowflake.ID)
	return value, ok && value != 0
}

func WithUser(ctx context.Context, userID snowflake.ID, role string) context.Context {
	if userID != 0 {
		ctx = context.WithValue(ctx, userIDKey, userID)
	}
	if role != "" {
		ctx = context.WithValue(ctx, userRoleKey, role)
	}
	return ctx
}

func UserIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	value, ok := ctx.Value(userIDKey).(snowflake.ID)
	return value, ok && value != 0
}

func RoleFromContext(ctx context.Context) string {
	value, _ := ctx.Value(userRoleKey).(string)
	return value
}
