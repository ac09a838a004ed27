package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of tokens issued at login.
const DefaultTokenTTL = 2 * time.Hour

type Claims struct {
	AccountID string `json:"id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller exposed to downstream handlers.
type Identity struct {
	ID   string
	Role string
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token embedding the account id and role.
func (m *TokenManager) Issue(id, role string) (string, error) {
	now := m.now()
	claims := Claims{
		AccountID: id,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies signature and expiry and returns the identity with a
// lower-cased role.
func (m *TokenManager) Parse(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{ID: claims.AccountID, Role: strings.ToLower(claims.Role)}, nil
}
