package audit

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// OpList gates the audit feed.
const OpList routing.Operation = "audit.list"

// Routes declares the audit endpoints.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Gated(http.MethodGet, "/audit", OpList, h.List),
	}
}
