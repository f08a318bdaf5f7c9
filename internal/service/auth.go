package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/userauth-server/internal/logger"
	"github.com/dtroode/userauth-server/internal/model"
)

// dummyHash is verified against when a login targets an unknown email so
// the miss path burns a comparable amount of work. It is a bcrypt hash of
// random bytes discarded after hashing, never a real credential.
const dummyHash = "$2a$10$VnrV9um2NJgTL6KJxLyW0eBziXciaCpXNQk6TEK3RNx2fqhIdTUUy"

// Auth orchestrates registration, sessions and password resets.
type Auth struct {
	userStore model.UserStore
	hasher    model.Hasher
	logger    *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(userStore model.UserStore, hasher model.Hasher, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger,
	}
}

// Register creates a user with the given email and a hash of password.
// Returns model.ErrAlreadyRegistered when the email is taken.
func (a *Auth) Register(ctx context.Context, email, password string) (model.User, error) {
	a.logger.Debug("auth service: registering user",
		"email", email)

	_, err := a.userStore.FindUserBy(ctx, model.Filter{model.FieldEmail: email})
	if err == nil {
		a.logger.Info("auth service: email already registered",
			"email", email)
		return model.User{}, model.ErrAlreadyRegistered
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("auth service: failed to check existing user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.AddUser(ctx, email, hash)
	if err != nil {
		// a concurrent Register can win the race between the lookup and
		// the insert; the unique index reports it
		if errors.Is(err, model.ErrAlreadyRegistered) {
			return model.User{}, model.ErrAlreadyRegistered
		}
		a.logger.Error("auth service: failed to add user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to add user: %w", err)
	}

	a.logger.Info("auth service: user registered",
		"email", email,
		"user_id", user.ID)

	return user, nil
}

// ValidLogin reports whether password matches the hash stored for email.
// An unknown email collapses to false rather than an error so callers
// cannot tell it apart from a wrong password.
func (a *Auth) ValidLogin(ctx context.Context, email, password string) (bool, error) {
	user, err := a.userStore.FindUserBy(ctx, model.Filter{model.FieldEmail: email})
	if errors.Is(err, model.ErrNotFound) {
		a.hasher.Check(password, dummyHash)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	return a.hasher.Check(password, user.HashedPassword), nil
}

// CreateSession validates the credentials and issues a fresh opaque
// session ID, replacing any session the user already holds.
func (a *Auth) CreateSession(ctx context.Context, email, password string) (string, error) {
	ok, err := a.ValidLogin(ctx, email, password)
	if err != nil {
		return "", err
	}
	if !ok {
		a.logger.Info("auth service: login rejected",
			"email", email)
		return "", model.ErrInvalidCredentials
	}

	user, err := a.userStore.FindUserBy(ctx, model.Filter{model.FieldEmail: email})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	sessionID := uuid.NewString()
	if err := a.userStore.UpdateUser(ctx, user.ID, model.Fields{model.FieldSessionID: sessionID}); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		a.logger.Error("auth service: failed to store session",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	a.logger.Info("auth service: session created",
		"user_id", user.ID)

	return sessionID, nil
}

// GetUserFromSessionID resolves a session ID to its user. Returns nil
// without error for empty input or when no session matches.
func (a *Auth) GetUserFromSessionID(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	user, err := a.userStore.FindUserBy(ctx, model.Filter{model.FieldSessionID: sessionID})
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by session: %w", err)
	}

	return &user, nil
}

// DestroySession clears the user's session. Idempotent: destroying a
// session that no longer exists is not an error.
func (a *Auth) DestroySession(ctx context.Context, userID uuid.UUID) error {
	err := a.userStore.UpdateUser(ctx, userID, model.Fields{model.FieldSessionID: nil})
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("auth service: failed to clear session",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to clear session: %w", err)
	}

	a.logger.Info("auth service: session destroyed",
		"user_id", userID)

	return nil
}

// GetResetPasswordToken issues a fresh reset token for the user with
// email, replacing any pending token. Returns model.ErrNotFound when the
// email is not registered.
func (a *Auth) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	user, err := a.userStore.FindUserBy(ctx, model.Filter{model.FieldEmail: email})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	token := uuid.NewString()
	if err := a.userStore.UpdateUser(ctx, user.ID, model.Fields{model.FieldResetToken: token}); err != nil {
		a.logger.Error("auth service: failed to store reset token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	a.logger.Info("auth service: reset token issued",
		"user_id", user.ID)

	return token, nil
}

// UpdatePassword consumes a pending reset token: the new password hash is
// stored and the token cleared in one update, so the token is single-use.
// Returns model.ErrInvalidResetToken when no user holds the token.
func (a *Auth) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return model.ErrInvalidResetToken
	}

	user, err := a.userStore.FindUserBy(ctx, model.Filter{model.FieldResetToken: resetToken})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to find user by reset token: %w", err)
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.userStore.UpdateUser(ctx, user.ID, model.Fields{
		model.FieldHashedPassword: hash,
		model.FieldResetToken:     nil,
	})
	if err != nil {
		a.logger.Error("auth service: failed to update password",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("auth service: password updated",
		"user_id", user.ID)

	return nil
}
