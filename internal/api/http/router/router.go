package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dtroode/userauth-server/internal/api/http/handler"
	"github.com/dtroode/userauth-server/internal/api/http/middleware"
	"github.com/dtroode/userauth-server/internal/logger"
	"github.com/dtroode/userauth-server/internal/model"
	"github.com/dtroode/userauth-server/internal/service"
)

// Router wires the authentication endpoints onto an echo instance.
type Router struct {
	authService    *service.Auth
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	authService *service.Auth,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates request structs against their validate tags.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Register configures middleware and routes and returns the echo
// instance.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	e.Use(echomw.Recover())
	e.Use(logging.Handle)

	h := handler.NewAuth(r.authService, r.contextManager, r.logger)

	e.GET("/", h.Welcome)
	e.POST("/users", h.Register)
	e.POST("/sessions", h.Login)
	e.DELETE("/sessions", h.Logout, authenticate.Handle)
	e.GET("/profile", h.Profile, authenticate.Handle)
	e.POST("/reset_password", h.ResetPassword)
	e.PUT("/reset_password", h.UpdatePassword)

	return e
}
