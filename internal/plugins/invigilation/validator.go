package invigilation

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

// Validation failure kinds, carried in the error envelope's "error" field.
const (
	TypeInvalidDate     = "invalid_date"
	TypeUnknownExaminer = "unknown_examiner"
	TypeUnknownSchool   = "unknown_school"
	TypeUnknownSubject  = "unknown_subject"
)

var examDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ReferenceLookup answers whether referenced rows exist.
type ReferenceLookup interface {
	ExaminerExists(ctx context.Context, id int64) (bool, error)
	SchoolExists(ctx context.Context, id int64) (bool, error)
	SubjectExists(ctx context.Context, id int64) (bool, error)
}

// Validator checks an assignment before it is created or updated.
type Validator struct {
	lookup ReferenceLookup
}

// NewValidator creates a validator backed by lookup.
func NewValidator(lookup ReferenceLookup) *Validator {
	return &Validator{lookup: lookup}
}

// Validate checks, in order: the exam date, the examiner, the school, then
// the subject. The first failure is returned; later checks do not run.
func (v *Validator) Validate(ctx context.Context, examinerID, schoolID, subjectID int64, examDate string) error {
	if !ValidExamDate(examDate) {
		return apperror.NewValidation("exam_date must be a real calendar date in YYYY-MM-DD form", "exam_date").
			WithType(TypeInvalidDate)
	}

	checks := []struct {
		exists func(context.Context, int64) (bool, error)
		id     int64
		field  string
		kind   string
		noun   string
	}{
		{v.lookup.ExaminerExists, examinerID, "examiner_id", TypeUnknownExaminer, "examiner"},
		{v.lookup.SchoolExists, schoolID, "school_id", TypeUnknownSchool, "school"},
		{v.lookup.SubjectExists, subjectID, "subject_id", TypeUnknownSubject, "subject"},
	}
	for _, check := range checks {
		ok, err := check.exists(ctx, check.id)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("looking up %s %d: %w", check.noun, check.id, err))
		}
		if !ok {
			return apperror.NewValidation(fmt.Sprintf("%s %d does not exist", check.noun, check.id), check.field).
				WithType(check.kind)
		}
	}
	return nil
}

// ValidExamDate reports whether s is a YYYY-MM-DD string naming a real date.
// time.Parse rejects out-of-range days such as February 30.
func ValidExamDate(s string) bool {
	if !examDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
