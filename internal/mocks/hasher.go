package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/userauth-server/internal/model"
)

var _ model.Hasher = (*Hasher)(nil)

// Hasher is a testify mock of model.Hasher.
type Hasher struct {
	mock.Mock
}

func (m *Hasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *Hasher) Check(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}
