package students

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// Gated operations owned by this plugin.
const (
	OpList   routing.Operation = "students.list"
	OpCreate routing.Operation = "students.create"
)

// Routes declares the student endpoints.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Gated(http.MethodGet, "/students", OpList, h.List),
		routing.Gated(http.MethodPost, "/students", OpCreate, h.Create),
	}
}
