// Package app is the application bootstrap and dependency injection root.
// It creates and holds all shared infrastructure (DB pool, Redis client,
// Echo instance, metrics registry, token issuer, authorization policy) and
// mounts every plugin's route table.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/config"
	"github.com/keyxmakerx/examboard/internal/middleware"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
	"github.com/keyxmakerx/examboard/internal/routing"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// DB is the MariaDB connection pool shared by all plugins.
	DB *sql.DB

	// Redis is the Redis client shared for sessions and rate limiting.
	Redis *redis.Client

	// Echo is the HTTP server instance.
	Echo *echo.Echo

	// Registry collects the Prometheus metrics served at /metrics.
	Registry *prometheus.Registry

	// Tokens issues and verifies bearer tokens with the configured secret.
	Tokens *auth.TokenIssuer

	// Policy maps each gated operation to its allowed roles.
	Policy *auth.Policy

	routes []routing.Route
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client) (*App, error) {
	policy, err := auth.NewPolicy(policyTable())
	if err != nil {
		return nil, fmt.Errorf("building authorization policy: %w", err)
	}

	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true
	e.Validator = middleware.NewRequestValidator()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		middleware.TrustedProxies(e, cfg.HTTP.TrustedProxies)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Echo:     e,
		Registry: reg,
		Tokens:   auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Policy:   policy,
	}

	app.setupMiddleware()
	e.HTTPErrorHandler = app.errorHandler

	return app, nil
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: the request id is assigned first so every later log line
// carries it, and recovery sits inside the logger and metrics so a panic is
// still recorded as a 500.
func (a *App) setupMiddleware() {
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(middleware.RequestLogger())
	a.Echo.Use(middleware.NewHTTPMetrics(a.Registry).Middleware())
	a.Echo.Use(middleware.Recovery())
	a.Echo.Use(middleware.SecurityHeaders())
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   a.Config.HTTP.CORSOrigins,
		AllowCredentials: true,
	}))
}

// errorResponse is the uniform JSON error envelope.
type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`

	// Detail carries the internal cause of a 500, in development only.
	Detail string `json:"detail,omitempty"`
}

// errorHandler is the custom Echo error handler. It maps domain errors
// (AppError) and Echo's own HTTP errors to the JSON envelope. Nothing else
// ever writes an error body.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	resp := errorResponse{
		Error:   apperror.TypeInternal,
		Message: "An unexpected error occurred. Please try again.",
	}

	if appErr := apperror.As(err); appErr != nil {
		code = appErr.Code
		resp.Error = appErr.Type
		resp.Message = appErr.Message
		resp.Fields = appErr.Fields

		// Log internal errors with the underlying cause.
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
				slog.String("request_id", middleware.GetRequestID(c)),
			)
			if a.Config.IsDevelopment() {
				resp.Detail = appErr.Internal.Error()
			}
		}
	} else if echoErr, ok := err.(*echo.HTTPError); ok {
		// Echo's built-in HTTP errors (404 from the router, 405, bad binds).
		code = echoErr.Code
		resp.Error = typeForStatus(code)
		resp.Message = defaultErrorMessage(code)
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			resp.Message = msg
		}
	} else {
		// Truly unexpected error -- log it.
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
			slog.String("request_id", middleware.GetRequestID(c)),
		)
		if a.Config.IsDevelopment() {
			resp.Detail = err.Error()
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if writeErr := c.JSON(code, resp); writeErr != nil {
		slog.Error("writing error response", slog.Any("error", writeErr))
	}
}

// typeForStatus names the envelope type for errors raised by Echo itself.
func typeForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return apperror.TypeValidation
	case http.StatusUnauthorized:
		return apperror.TypeUnauthorized
	case http.StatusForbidden:
		return apperror.TypeAccessDenied
	case http.StatusNotFound:
		return apperror.TypeNotFound
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusTooManyRequests:
		return "rate_limited"
	}
	if code >= http.StatusInternalServerError {
		return apperror.TypeInternal
	}
	return "request_error"
}

// defaultErrorMessage returns a user-friendly message for common HTTP status
// codes when no specific message was provided by the error.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "The request was invalid or cannot be processed."
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusForbidden:
		return "insufficient permissions"
	case http.StatusNotFound:
		return "The requested resource does not exist."
	case http.StatusMethodNotAllowed:
		return "This method is not allowed on this resource."
	case http.StatusRequestEntityTooLarge:
		return "The request body is too large."
	case http.StatusTooManyRequests:
		return "Rate limit exceeded. Please try again later."
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting examboard server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
		slog.Int("routes", len(a.routes)),
	)
	return a.Echo.Start(addr)
}
