package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Field names a column of the users table usable in filters and updates.
type Field string

const (
	FieldID             Field = "id"
	FieldEmail          Field = "email"
	FieldHashedPassword Field = "hashed_password"
	FieldSessionID      Field = "session_id"
	FieldResetToken     Field = "reset_token"
)

// Filterable reports whether the field may appear in a lookup filter.
func (f Field) Filterable() bool {
	switch f {
	case FieldID, FieldEmail, FieldSessionID, FieldResetToken:
		return true
	}
	return false
}

// Mutable reports whether the field may be changed after creation.
// ID and email are immutable.
func (f Field) Mutable() bool {
	switch f {
	case FieldHashedPassword, FieldSessionID, FieldResetToken:
		return true
	}
	return false
}

// Filter selects users by exact match on every listed field.
type Filter map[Field]any

// Fields carries column values for a partial update.
type Fields map[Field]any

// UserStore defines persistence operations for users.
type UserStore interface {
	AddUser(ctx context.Context, email, hashedPassword string) (User, error)
	FindUserBy(ctx context.Context, filter Filter) (User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, fields Fields) error
}

// User represents a stored user with authentication material.
// SessionID is set while the user holds an active session, ResetToken
// while a password reset is pending.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	SessionID      *string
	ResetToken     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
