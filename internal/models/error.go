package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Credential errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordNotSet     = errors.New("account has no password set")

	// Password reset token errors
	ErrTokenInvalid = errors.New("invalid or expired token")
)
