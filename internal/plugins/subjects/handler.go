package subjects

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/middleware"
)

// Handler handles HTTP requests for subjects.
type Handler struct {
	service SubjectService
}

// NewHandler creates a new subject handler.
func NewHandler(service SubjectService) *Handler {
	return &Handler{service: service}
}

// List returns every subject (GET /subjects).
func (h *Handler) List(c echo.Context) error {
	out, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if out == nil {
		out = []Subject{}
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a subject (POST /subjects).
func (h *Handler) Create(c echo.Context) error {
	var req SubjectRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	subject, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, subject)
}
