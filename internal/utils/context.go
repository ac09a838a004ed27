package utils

import (
	"context"
	"strings"
)

// SetUserContext sets the authenticated account into context (called by middleware).
func SetUserContext(ctx context.Context, id string, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserRoleKey, strings.ToLower(role))
	return ctx
}

// GetUserIDFromContext retrieves the account id safely.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}
