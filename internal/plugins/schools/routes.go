package schools

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// Gated operations owned by this plugin.
const (
	OpCreate routing.Operation = "schools.create"
	OpUpdate routing.Operation = "schools.update"
	OpDelete routing.Operation = "schools.delete"
)

// Routes declares the school endpoints. The listing is public.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Public(http.MethodGet, "/schools", h.List),
		routing.Gated(http.MethodPost, "/schools", OpCreate, h.Create),
		routing.Gated(http.MethodPut, "/schools/:id", OpUpdate, h.Update),
		routing.Gated(http.MethodDelete, "/schools/:id", OpDelete, h.Delete),
	}
}
