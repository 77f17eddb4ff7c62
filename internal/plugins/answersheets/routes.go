package answersheets

import (
	"net/http"

	"github.com/keyxmakerx/examboard/internal/routing"
)

// Gated operations owned by this plugin.
const (
	OpList     routing.Operation = "answer_sheets.list"
	OpCreate   routing.Operation = "answer_sheets.create"
	OpEvaluate routing.Operation = "answer_sheets.evaluate"
)

// Routes declares the answer sheet endpoints.
func Routes(h *Handler) []routing.Route {
	return []routing.Route{
		routing.Gated(http.MethodGet, "/answer-sheets", OpList, h.List),
		routing.Gated(http.MethodPost, "/answer-sheets", OpCreate, h.Create),
		routing.Gated(http.MethodPut, "/answer-sheets/:id/evaluation", OpEvaluate, h.Evaluate),
	}
}
