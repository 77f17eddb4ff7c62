package examiners

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// Gated operations owned by this plugin.
const (
	OpCreate routing.Operation = "examiners.create"
	OpUpdate routing.Operation = "examiners.update"
	OpDelete routing.Operation = "examiners.delete"
)

// Routes declares the examiner endpoints. Any authenticated caller may list.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Authenticated(http.MethodGet, "/examiners", h.List),
		routing.Gated(http.MethodPost, "/examiners", OpCreate, h.Create),
		routing.Gated(http.MethodPut, "/examiners/:id", OpUpdate, h.Update),
		routing.Gated(http.MethodDelete, "/examiners/:id", OpDelete, h.Delete),
	}
}
