package audit

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the audit log.
type Handler struct {
	service AuditService
}

// NewHandler creates a new audit handler.
func NewHandler(service AuditService) *Handler {
	return &Handler{service: service}
}

// ListResponse is the paginated audit feed.
type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
}

// List returns recent entries (GET /audit?page=&entity_type=&entity_id=).
func (h *Handler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	page = min(max(page, 1), maxPage)
	entityID, _ := strconv.ParseInt(c.QueryParam("entity_id"), 10, 64)

	entries, total, err := h.service.List(c.Request().Context(), Filter{
		EntityType: c.QueryParam("entity_type"),
		EntityID:   entityID,
	}, page)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}

	return c.JSON(http.StatusOK, ListResponse{Entries: entries, Total: total, Page: page, PerPage: perPage})
}
