package stats

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles GET /stats.
type Handler struct {
	service StatsService
}

// NewHandler creates a new stats handler.
func NewHandler(service StatsService) *Handler {
	return &Handler{service: service}
}

// Summary returns the grouped counts (GET /stats).
func (h *Handler) Summary(c echo.Context) error {
	sum, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
