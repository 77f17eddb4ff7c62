package subjects

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// OpCreate gates subject creation.
const OpCreate routing.Operation = "subjects.create"

// Routes declares the subject endpoints. The listing is public.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Public(http.MethodGet, "/subjects", h.List),
		routing.Gated(http.MethodPost, "/subjects", OpCreate, h.Create),
	}
}
