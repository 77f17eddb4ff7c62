package invigilation

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// Gated operations owned by this plugin.
const (
	OpListMine routing.Operation = "invigilation.list_mine"
	OpCreate   routing.Operation = "invigilation.create"
	OpUpdate   routing.Operation = "invigilation.update"
	OpDelete   routing.Operation = "invigilation.delete"
)

// Routes declares the invigilation endpoints. The full listing is open to
// any authenticated caller.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Authenticated(http.MethodGet, "/invigilation", h.List),
		routing.Gated(http.MethodGet, "/invigilation/mine", OpListMine, h.ListMine),
		routing.Gated(http.MethodPost, "/invigilation", OpCreate, h.Create),
		routing.Gated(http.MethodPut, "/invigilation/:id", OpUpdate, h.Update),
		routing.Gated(http.MethodDelete, "/invigilation/:id", OpDelete, h.Delete),
	}
}
