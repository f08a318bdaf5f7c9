// Package context carries the authenticated user through request contexts.
package context

import (
	"context"

	"github.com/dtroode/userauth-server/internal/model"
)

type ctxKey int

const userKey ctxKey = iota

// Manager stores and retrieves the authenticated user on request
// contexts using an unexported key.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a child context carrying user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the user stored by SetUserToContext.
// The boolean reports whether a user was present.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
