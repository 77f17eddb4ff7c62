package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin coordinator examiner"`
}

func TestRequestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := NewRequestValidator()

	err := v.Validate(&sampleRequest{Username: "ab", Email: "nope", Role: "root"})
	appErr := apperror.As(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", appErr.Code)
	}
	want := map[string]bool{"username": true, "email": true, "role": true}
	if len(appErr.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %v", len(want), appErr.Fields)
	}
	for _, f := range appErr.Fields {
		if !want[f] {
			t.Errorf("unexpected field %q", f)
		}
	}
	if !strings.Contains(appErr.Message, "username must be at least 3 characters") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestRequestValidator_Valid(t *testing.T) {
	v := NewRequestValidator()
	if err := v.Validate(&sampleRequest{Username: "alice", Email: "a@x.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	e := echo.New()
	e.Validator = NewRequestValidator()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var dst sampleRequest
	err := BindAndValidate(c, &dst)
	if apperror.SafeCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %v", err)
	}
}
