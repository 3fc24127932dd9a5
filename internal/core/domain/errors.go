package domain

import "errors"

// Error kinds. Every failure a handler reports belongs to exactly one of
// these; clients branch on the kind, not the message.
const (
	KindValidation    = "validation"
	KindStateConflict = "state_conflict"
	KindAuthDenied    = "authorization_denied"
	KindInfra         = "infrastructure"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
