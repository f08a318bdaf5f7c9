package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/userauth-server/internal/logger"
	"github.com/dtroode/userauth-server/internal/model"
)

// sessionCookieName is the cookie the session ID travels in.
const sessionCookieName = "session_id"

// SessionResolver resolves users from opaque session identifiers.
type SessionResolver interface {
	GetUserFromSessionID(ctx context.Context, sessionID string) (*model.User, error)
}

// Authenticate resolves the session cookie and injects the user into the
// request context.
type Authenticate struct {
	sessions       SessionResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a resolvable session with 403.
func (m *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var sessionID string
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			sessionID = cookie.Value
		}

		user, err := m.sessions.GetUserFromSessionID(c.Request().Context(), sessionID)
		if err != nil {
			m.logger.Error("authenticate middleware: session lookup failed",
				"error", err.Error())
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if user == nil {
			return echo.NewHTTPError(http.StatusForbidden, "invalid session")
		}

		ctx := m.contextManager.SetUserToContext(c.Request().Context(), *user)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
