package model

import "errors"

var (
	// ErrNotFound is returned by lookups that match no user.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyRegistered is returned when the email is already taken.
	ErrAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken is returned when no user holds the reset token.
	ErrInvalidResetToken = errors.New("invalid reset token")
	// ErrInvalidFilter is returned before querying when a filter names an
	// unknown field.
	ErrInvalidFilter = errors.New("invalid filter field")
	// ErrInvalidField is returned before updating when a field is unknown
	// or immutable.
	ErrInvalidField = errors.New("invalid update field")
	// ErrStoreFailure wraps constraint and connectivity failures of the
	// underlying store.
	ErrStoreFailure = errors.New("store failure")
)
