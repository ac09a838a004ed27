package account

import "yumexpress-be/internal/apperr"

var (
	ErrAccountNotFound = apperr.New(apperr.ErrNotFound, "account not found")
	ErrEmailTaken      = apperr.New(apperr.ErrConflict, "email already exists")
	ErrInvalidRole     = apperr.Validation("invalid role, allowed: user or restaurant")
	ErrMissingFields   = apperr.Validation("name, email, password and role are required")
	ErrMissingLogin    = apperr.Validation("email and password are required")
)
