package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		typ  string
	}{
		{"validation", NewValidation("bad", "email"), http.StatusBadRequest, TypeValidation},
		{"duplicate identity", NewDuplicateIdentity("taken"), http.StatusBadRequest, TypeDuplicateIdentity},
		{"duplicate key", NewDuplicateKey("taken"), http.StatusBadRequest, TypeDuplicateKey},
		{"unauthorized", NewUnauthorized("no"), http.StatusUnauthorized, TypeUnauthorized},
		{"forbidden", NewForbidden("no"), http.StatusForbidden, TypeAccessDenied},
		{"not found", NewNotFound("gone"), http.StatusNotFound, TypeNotFound},
		{"internal", NewInternal(errors.New("boom")), http.StatusInternalServerError, TypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, tt.err.Code)
			}
			if tt.err.Type != tt.typ {
				t.Errorf("expected type %q, got %q", tt.typ, tt.err.Type)
			}
		})
	}
}

func TestNewInternal_HidesDetail(t *testing.T) {
	err := NewInternal(errors.New("table users is locked"))
	if err.Message == "table users is locked" {
		t.Fatal("internal detail leaked into client message")
	}
	if !errors.Is(err, err.Internal) {
		t.Error("expected Unwrap to expose the internal error")
	}
}

func TestAs_ThroughWrapping(t *testing.T) {
	base := NewNotFound("school not found")
	wrapped := fmt.Errorf("loading school: %w", base)

	if got := As(wrapped); got != base {
		t.Fatalf("expected to unwrap AppError, got %v", got)
	}
	if !IsType(wrapped, TypeNotFound) {
		t.Error("expected IsType to match not_found")
	}
	if SafeCode(wrapped) != http.StatusNotFound {
		t.Errorf("expected 404, got %d", SafeCode(wrapped))
	}
	if SafeCode(errors.New("plain")) != http.StatusInternalServerError {
		t.Error("expected 500 for plain errors")
	}
}

func TestWithType_Copies(t *testing.T) {
	base := NewValidation("invalid date", "exam_date")
	typed := base.WithType("invalid_date")

	if base.Type != TypeValidation {
		t.Error("WithType must not mutate the receiver")
	}
	if typed.Type != "invalid_date" || typed.Code != http.StatusBadRequest {
		t.Errorf("unexpected copy %+v", typed)
	}
	if len(typed.Fields) != 1 || typed.Fields[0] != "exam_date" {
		t.Errorf("expected fields to carry over, got %v", typed.Fields)
	}
}
