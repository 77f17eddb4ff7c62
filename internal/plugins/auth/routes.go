package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// Gated operations owned by this plugin.
const (
	OpUsersList      routing.Operation = "users.list"
	OpUsersProvision routing.Operation = "users.provision"
	OpUsersStatus    routing.Operation = "users.status"
)

// Routes declares the auth and user-management endpoints. loginLimit and
// registerLimit throttle credential guessing and account spam.
func Routes(h *Handler, loginLimit, registerLimit echo.MiddlewareFunc) []routing.Route {
	return []routing.Route{
		routing.Public(http.MethodPost, "/auth/register", h.Register, registerLimit),
		routing.Public(http.MethodPost, "/auth/login", h.Login, loginLimit),
		routing.Authenticated(http.MethodPost, "/auth/logout", h.Logout),
		routing.Authenticated(http.MethodGet, "/auth/verify", h.Verify),

		routing.Gated(http.MethodGet, "/users", OpUsersList, h.ListUsers),
		routing.Gated(http.MethodPost, "/users", OpUsersProvision, h.Provision),
		routing.Gated(http.MethodPatch, "/users/:id/status", OpUsersStatus, h.SetStatus),
	}
}
