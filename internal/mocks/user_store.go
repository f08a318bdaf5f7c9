// Package mocks contains testify mocks for service-facing interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/userauth-server/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

// UserStore is a testify mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) AddUser(ctx context.Context, email, hashedPassword string) (model.User, error) {
	args := m.Called(ctx, email, hashedPassword)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) FindUserBy(ctx context.Context, filter model.Filter) (model.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdateUser(ctx context.Context, id uuid.UUID, fields model.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
