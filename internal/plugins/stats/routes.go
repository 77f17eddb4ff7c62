package stats

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// OpView gates the summary.
const OpView routing.Operation = "stats.view"

// Routes declares the stats endpoint.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Gated(http.MethodGet, "/stats", OpView, h.Summary),
	}
}
