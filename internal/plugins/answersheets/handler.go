package answersheets

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/middleware"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
)

// Handler handles HTTP requests for answer sheets.
type Handler struct {
	service AnswerSheetService
}

// NewHandler creates a new answer sheet handler.
func NewHandler(service AnswerSheetService) *Handler {
	return &Handler{service: service}
}

// List returns the caller's visible sheets (GET /answer-sheets).
func (h *Handler) List(c echo.Context) error {
	caller := auth.GetIdentity(c)
	if caller == nil {
		return apperror.NewMissingContext()
	}
	out, err := h.service.List(c.Request().Context(), *caller)
	if err != nil {
		return err
	}
	if out == nil {
		out = []AnswerSheet{}
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a pending sheet (POST /answer-sheets).
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	sheet, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sheet)
}

// Evaluate records marks (PUT /answer-sheets/:id/evaluation).
func (h *Handler) Evaluate(c echo.Context) error {
	caller := auth.GetIdentity(c)
	if caller == nil {
		return apperror.NewMissingContext()
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperror.NewBadRequest("invalid answer sheet id")
	}

	var req EvaluationRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	sheet, err := h.service.Evaluate(c.Request().Context(), *caller, id, *req.MarksObtained)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sheet)
}
