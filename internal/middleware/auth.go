package middleware

import (
	"net/http"
	"strings"

	"yumexpress-be/internal/auth"
	"yumexpress-be/internal/logger"
	"yumexpress-be/internal/utils"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller's id and lower-cased role in the request context.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := auth.ExtractBearerToken(r)
			if err != nil {
				utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
				return
			}

			identity, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("token rejected", zap.Error(err))
				utils.WriteJSONError(w, auth.ErrTokenInvalid.Error(), http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), identity.ID, identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the authenticated role
// matches requiredRole, compared case-insensitively.
func RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			role := utils.GetUserRoleFromContext(r.Context())
			if !ok || role == "" {
				utils.WriteJSONError(w, "User not authenticated", http.StatusUnauthorized)
				return
			}

			if !strings.EqualFold(role, requiredRole) {
				utils.WriteJSONError(w, "Access denied: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
