package auth

import (
	"net/http"
	"strings"

	"yumexpress-be/internal/apperr"
)

const bearerPrefix = "Bearer "

var (
	ErrTokenMissing   = apperr.New(apperr.ErrUnauthenticated, "authorization token missing")
	ErrTokenMalformed = apperr.New(apperr.ErrUnauthenticated, "authorization header must be a bearer token")
	ErrTokenInvalid   = apperr.New(apperr.ErrUnauthenticated, "invalid or expired token")
)

// ExtractBearerToken reads the token from the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrTokenMissing
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrTokenMalformed
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if token == "" {
		return "", ErrTokenMalformed
	}

	return token, nil
}
