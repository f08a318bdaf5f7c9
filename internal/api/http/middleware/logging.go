package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/userauth-server/internal/logger"
)

// Logging logs every HTTP request and its result.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		l.logger.Debug("http request started",
			"method", c.Request().Method,
			"path", c.Request().URL.Path)

		err := next(c)

		duration := time.Since(start)

		status := c.Response().Status
		if err != nil {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		l.logger.Info("http request completed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"duration_ms", duration.Milliseconds(),
			"status", status)

		if err != nil {
			l.logger.Error("http request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err.Error(),
				"status", status)
		}

		return err
	}
}
