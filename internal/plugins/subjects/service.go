package subjects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/sanitize"
)

// SubjectService handles business logic for subjects.
type SubjectService interface {
	List(ctx context.Context) ([]Subject, error)
	Create(ctx context.Context, req SubjectRequest) (*Subject, error)
}

type subjectService struct {
	repo SubjectRepository
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo SubjectRepository) SubjectService {
	return &subjectService{repo: repo}
}

func (s *subjectService) List(ctx context.Context) ([]Subject, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

// Create stores a subject. Codes are upper-cased so "mat101" and "MAT101"
// collide on the unique index.
func (s *subjectService) Create(ctx context.Context, req SubjectRequest) (*Subject, error) {
	subject := &Subject{
		SubjectName: sanitize.Text(req.SubjectName),
		SubjectCode: strings.ToUpper(sanitize.Text(req.SubjectCode)),
		CreatedAt:   time.Now().UTC(),
	}

	var missing []string
	if subject.SubjectName == "" {
		missing = append(missing, "subject_name")
	}
	if subject.SubjectCode == "" {
		missing = append(missing, "subject_code")
	}
	if len(missing) > 0 {
		return nil, apperror.NewValidation("missing required fields", missing...)
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		if apperror.As(err) != nil {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating subject: %w", err))
	}
	return subject, nil
}
