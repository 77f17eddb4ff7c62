package examiners

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/middleware"
)

// Handler handles HTTP requests for examiners.
type Handler struct {
	service ExaminerService
}

// NewHandler creates a new examiner handler.
func NewHandler(service ExaminerService) *Handler {
	return &Handler{service: service}
}

// List returns every examiner ordered by name (GET /examiners).
func (h *Handler) List(c echo.Context) error {
	out, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if out == nil {
		out = []Examiner{}
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds an examiner (POST /examiners).
func (h *Handler) Create(c echo.Context) error {
	var req ExaminerRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	e, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Update replaces an examiner's details (PUT /examiners/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ExaminerRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	e, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Delete removes an examiner (DELETE /examiners/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Examiner deleted"})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequest("invalid examiner id")
	}
	return id, nil
}
