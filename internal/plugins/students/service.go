package students

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/sanitize"
)

// StudentService handles business logic for students.
type StudentService interface {
	List(ctx context.Context) ([]Student, error)
	Create(ctx context.Context, req StudentRequest) (*Student, error)
}

type studentService struct {
	repo StudentRepository
}

// NewStudentService creates a new student service.
func NewStudentService(repo StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) List(ctx context.Context) ([]Student, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (s *studentService) Create(ctx context.Context, req StudentRequest) (*Student, error) {
	student := &Student{
		StudentName: sanitize.Text(req.StudentName),
		RollNumber:  strings.ToUpper(sanitize.Text(req.RollNumber)),
		SchoolID:    req.SchoolID,
		CreatedAt:   time.Now().UTC(),
	}

	var missing []string
	if student.StudentName == "" {
		missing = append(missing, "student_name")
	}
	if student.RollNumber == "" {
		missing = append(missing, "roll_number")
	}
	if len(missing) > 0 {
		return nil, apperror.NewValidation("missing required fields", missing...)
	}

	if err := s.repo.Create(ctx, student); err != nil {
		if apperror.As(err) != nil {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating student: %w", err))
	}
	return student, nil
}
