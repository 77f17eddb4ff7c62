package invigilation

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

// fakeLookup resolves ids present in its sets and records the order of calls.
type fakeLookup struct {
	examiners map[int64]bool
	schools   map[int64]bool
	subjects  map[int64]bool
	err       error
	calls     []string
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		examiners: map[int64]bool{1: true},
		schools:   map[int64]bool{1: true},
		subjects:  map[int64]bool{1: true},
	}
}

func (f *fakeLookup) ExaminerExists(_ context.Context, id int64) (bool, error) {
	f.calls = append(f.calls, "examiner")
	return f.examiners[id], f.err
}

func (f *fakeLookup) SchoolExists(_ context.Context, id int64) (bool, error) {
	f.calls = append(f.calls, "school")
	return f.schools[id], f.err
}

func (f *fakeLookup) SubjectExists(_ context.Context, id int64) (bool, error) {
	f.calls = append(f.calls, "subject")
	return f.subjects[id], f.err
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name       string
		examiner   int64
		school     int64
		subject    int64
		date       string
		wantType   string
		wantField  string
		wantLookup int
	}{
		{"valid", 1, 1, 1, "2025-06-01", "", "", 3},
		{"unknown examiner", 999, 1, 1, "2025-06-01", TypeUnknownExaminer, "examiner_id", 1},
		{"unknown school", 1, 999, 1, "2025-06-01", TypeUnknownSchool, "school_id", 2},
		{"unknown subject", 1, 1, 999, "2025-06-01", TypeUnknownSubject, "subject_id", 3},
		{"february 30", 1, 1, 1, "2025-02-30", TypeInvalidDate, "exam_date", 0},
		{"month 13", 1, 1, 1, "2024-13-01", TypeInvalidDate, "exam_date", 0},
		{"leap day", 1, 1, 1, "2024-02-29", "", "", 3},
		{"non-leap day", 1, 1, 1, "2023-02-29", TypeInvalidDate, "exam_date", 0},
		{"wrong layout", 1, 1, 1, "01/06/2025", TypeInvalidDate, "exam_date", 0},
		{"single digit month", 1, 1, 1, "2025-6-01", TypeInvalidDate, "exam_date", 0},
		{"trailing time", 1, 1, 1, "2025-06-01T00:00:00Z", TypeInvalidDate, "exam_date", 0},
		{"empty", 1, 1, 1, "", TypeInvalidDate, "exam_date", 0},
		// The date check wins over an unknown examiner.
		{"bad date and examiner", 999, 1, 1, "2025-02-30", TypeInvalidDate, "exam_date", 0},
		// The examiner check wins over an unknown school.
		{"bad examiner and school", 999, 999, 1, "2025-06-01", TypeUnknownExaminer, "examiner_id", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := newFakeLookup()
			err := NewValidator(lookup).Validate(context.Background(), tt.examiner, tt.school, tt.subject, tt.date)

			if len(lookup.calls) != tt.wantLookup {
				t.Errorf("expected %d lookups, got %v", tt.wantLookup, lookup.calls)
			}
			if tt.wantType == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			appErr := apperror.As(err)
			if appErr == nil {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", appErr.Code)
			}
			if appErr.Type != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, appErr.Type)
			}
			if len(appErr.Fields) != 1 || appErr.Fields[0] != tt.wantField {
				t.Errorf("expected field %q, got %v", tt.wantField, appErr.Fields)
			}
		})
	}
}

func TestValidator_LookupFailure(t *testing.T) {
	lookup := newFakeLookup()
	lookup.err = errors.New("connection refused")

	err := NewValidator(lookup).Validate(context.Background(), 1, 1, 1, "2025-06-01")
	appErr := apperror.As(err)
	if appErr == nil || appErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
	if len(lookup.calls) != 1 {
		t.Errorf("expected to stop after the failing lookup, got %v", lookup.calls)
	}
}
