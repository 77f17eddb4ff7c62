package students

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/middleware"
)

// Handler handles HTTP requests for students.
type Handler struct {
	service StudentService
}

// NewHandler creates a new student handler.
func NewHandler(service StudentService) *Handler {
	return &Handler{service: service}
}

// List returns every student (GET /students).
func (h *Handler) List(c echo.Context) error {
	out, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if out == nil {
		out = []Student{}
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a student (POST /students).
func (h *Handler) Create(c echo.Context) error {
	var req StudentRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	student, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, student)
}
