package account

import (
	"context"
	"errors"
	"strings"
	"sync"

	"yumexpress-be/internal/apperr"
	"yumexpress-be/internal/auth"
	"yumexpress-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(id, role string) (string, error)
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (Account, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Profile(ctx context.Context, role Role, id string) (Account, error)
	UpdateProfile(ctx context.Context, role Role, id string, p UpdateProfileParams) (Account, error)
}

type service struct {
	repo          Repository
	tokens        TokenIssuer
	checkPassword func(password, hash string) bool
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens, checkPassword: auth.CheckPasswordHash}
}

// dummyHash is compared against when no account matches, so an unknown email
// costs the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword("yumexpress-login-placeholder")
	if err != nil {
		panic(err)
	}
	return h
})

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return Account{}, ErrMissingFields
	}

	role, err := ParseRole(in.Role)
	if err != nil {
		return Account{}, err
	}

	// Uniqueness is per role table. The other table is not consulted.
	_, err = s.repo.FindByEmail(ctx, role, email)
	switch {
	case err == nil:
		log.Info("email already registered", zap.String("email", email))
		return Account{}, ErrEmailTaken
	case !errors.Is(err, ErrAccountNotFound):
		return Account{}, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return Account{}, err
	}

	a, err := s.repo.Create(ctx, Account{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
		Address:  strings.TrimSpace(in.Address),
	})
	if err != nil {
		return Account{}, err
	}

	log.Info("register service completed",
		zap.String("account_id", a.ID.String()),
		zap.String("role", string(role)),
	)
	return a, nil
}

// Login looks in the user table first, then the restaurant table. Every
// credential failure returns the same error.
func (s *service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrMissingLogin
	}

	var (
		a   Account
		err error
	)
	for _, role := range []Role{RoleUser, RoleRestaurant} {
		a, err = s.repo.FindByEmail(ctx, role, email)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrAccountNotFound) {
			return LoginResult{}, err
		}
	}
	if err != nil {
		s.checkPassword(password, dummyHash())
		log.Info("login rejected")
		return LoginResult{}, apperr.ErrInvalidCredentials
	}

	if !s.checkPassword(password, a.Password) {
		log.Info("login rejected")
		return LoginResult{}, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a.ID.String(), string(a.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.String("account_id", a.ID.String()), zap.Error(err))
		return LoginResult{}, err
	}

	return LoginResult{Token: token, Account: a}, nil
}

func (s *service) Profile(ctx context.Context, role Role, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	return s.repo.FindByID(ctx, role, accountID)
}

func (s *service) UpdateProfile(ctx context.Context, role Role, id string, p UpdateProfileParams) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Account{}, apperr.Validation("name cannot be empty")
		}
		p.Name = &name
	}

	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if email == "" {
			return Account{}, apperr.Validation("email cannot be empty")
		}
		p.Email = &email
	}

	if p.Password != nil {
		if *p.Password == "" {
			return Account{}, apperr.Validation("password cannot be empty")
		}
		hashed, err := auth.HashPassword(*p.Password)
		if err != nil {
			return Account{}, err
		}
		p.Password = &hashed
	}

	return s.repo.UpdateProfile(ctx, role, accountID, p)
}
