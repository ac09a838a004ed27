// Package apperr declares the error kinds shared by every domain package.
// Domain errors wrap one of these kinds so the HTTP layer can map them to a
// status code with errors.Is.
package apperr

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrConflict           = errors.New("conflict")
)

// Validation wraps ErrValidation with a human readable reason.
func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// New returns an error that reports msg but matches kind with errors.Is.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// PgUniqueViolation is the SQLSTATE postgres reports for unique constraint errors.
const PgUniqueViolation = "23505"
