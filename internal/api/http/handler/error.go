package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/userauth-server/internal/model"
)

// handleError maps domain errors to HTTP status classes. Store internals
// never reach the client.
func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrAlreadyRegistered):
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, model.ErrInvalidResetToken):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reset token")
	case errors.Is(err, model.ErrInvalidFilter), errors.Is(err, model.ErrInvalidField):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
