package invigilation

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/middleware"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
)

// Handler handles HTTP requests for invigilation assignments.
type Handler struct {
	service InvigilationService
}

// NewHandler creates a new invigilation handler.
func NewHandler(service InvigilationService) *Handler {
	return &Handler{service: service}
}

// List returns every assignment (GET /invigilation).
func (h *Handler) List(c echo.Context) error {
	out, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(out))
}

// ListMine returns the caller's own duties (GET /invigilation/mine).
func (h *Handler) ListMine(c echo.Context) error {
	caller := auth.GetIdentity(c)
	if caller == nil {
		return apperror.NewMissingContext()
	}
	out, err := h.service.ListMine(c.Request().Context(), *caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(out))
}

// Create adds an assignment (POST /invigilation).
func (h *Handler) Create(c echo.Context) error {
	actor := auth.GetIdentity(c)
	if actor == nil {
		return apperror.NewMissingContext()
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), *actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Update replaces an assignment (PUT /invigilation/:id).
func (h *Handler) Update(c echo.Context) error {
	actor := auth.GetIdentity(c)
	if actor == nil {
		return apperror.NewMissingContext()
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	input, err := bindInput(c)
	if err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), *actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete removes an assignment (DELETE /invigilation/:id).
func (h *Handler) Delete(c echo.Context) error {
	actor := auth.GetIdentity(c)
	if actor == nil {
		return apperror.NewMissingContext()
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), *actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Invigilation assignment deleted"})
}

func bindInput(c echo.Context) (AssignmentInput, error) {
	var req AssignmentRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return AssignmentInput{}, err
	}
	return AssignmentInput{
		ExaminerID:  req.ExaminerID,
		SchoolID:    req.SchoolID,
		SubjectID:   req.SubjectID,
		ExamDate:    req.ExamDate,
		ExamSession: req.ExamSession,
	}, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequest("invalid assignment id")
	}
	return id, nil
}

func orEmpty(in []Assignment) []Assignment {
	if in == nil {
		return []Assignment{}
	}
	return in
}
