package services

import "errors"

// Sentinel errors the handlers translate into flashes, inline field
// errors, or a 404 page.
var (
	ErrNotFound       = errors.New("record not found")
	ErrForbidden      = errors.New("permission denied")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmailTaken     = errors.New("email already registered")
	ErrAdminImmutable = errors.New("cannot modify admin user status")
)
