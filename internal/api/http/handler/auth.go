package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/userauth-server/internal/logger"
	"github.com/dtroode/userauth-server/internal/model"
)

// sessionCookieName is the cookie the session ID travels in.
const sessionCookieName = "session_id"

// AuthService defines registration, session and password reset operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (model.User, error)
	CreateSession(ctx context.Context, email, password string) (string, error)
	DestroySession(ctx context.Context, userID uuid.UUID) error
	GetResetPasswordToken(ctx context.Context, email string) (string, error)
	UpdatePassword(ctx context.Context, resetToken, newPassword string) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type resetRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type updatePasswordRequest struct {
	Email       string `json:"email" form:"email" validate:"required,email"`
	ResetToken  string `json:"reset_token" form:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required"`
}

// Welcome is the unauthenticated landing endpoint.
func (h *Auth) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Bienvenue"})
}

// Register creates a new user from email and password.
func (h *Auth) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		return handleError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"email":   user.Email,
		"message": "user created",
	})
}

// Login validates credentials and sets the session cookie.
func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sessionID, err := h.authService.CreateSession(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		return handleError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"email":   req.Email,
		"message": "logged in",
	})
}

// Profile returns the authenticated user's email. The authenticate
// middleware has already resolved the session.
func (h *Auth) Profile(c echo.Context) error {
	user, ok := h.contextManager.GetUserFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "invalid session")
	}

	return c.JSON(http.StatusOK, echo.Map{"email": user.Email})
}

// Logout destroys the authenticated user's session and expires the
// cookie.
func (h *Auth) Logout(c echo.Context) error {
	user, ok := h.contextManager.GetUserFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "invalid session")
	}

	if err := h.authService.DestroySession(c.Request().Context(), user.ID); err != nil {
		h.logger.Error("auth handler: logout failed",
			"user_id", user.ID,
			"error", err.Error())
		return handleError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Bienvenue"})
}

// ResetPassword issues a password reset token for the given email.
func (h *Auth) ResetPassword(c echo.Context) error {
	var req resetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.GetResetPasswordToken(c.Request().Context(), req.Email)
	if err != nil {
		h.logger.Debug("auth handler: reset token request failed",
			"email", req.Email,
			"error", err.Error())
		return handleError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"email":       req.Email,
		"reset_token": token,
	})
}

// UpdatePassword consumes a reset token and stores the new password.
func (h *Auth) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.UpdatePassword(c.Request().Context(), req.ResetToken, req.NewPassword); err != nil {
		h.logger.Debug("auth handler: password update failed",
			"email", req.Email,
			"error", err.Error())
		return handleError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"email":   req.Email,
		"message": "Password updated",
	})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}
