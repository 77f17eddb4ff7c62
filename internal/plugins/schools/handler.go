package schools

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/middleware"
)

// Handler handles HTTP requests for schools.
type Handler struct {
	service SchoolService
}

// NewHandler creates a new school handler.
func NewHandler(service SchoolService) *Handler {
	return &Handler{service: service}
}

// List returns every school ordered by name (GET /schools).
func (h *Handler) List(c echo.Context) error {
	out, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if out == nil {
		out = []School{}
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a school (POST /schools).
func (h *Handler) Create(c echo.Context) error {
	var req SchoolRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	school, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, school)
}

// Update replaces a school's details (PUT /schools/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req SchoolRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	school, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, school)
}

// Delete removes a school (DELETE /schools/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "School deleted"})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequest("invalid school id")
	}
	return id, nil
}
