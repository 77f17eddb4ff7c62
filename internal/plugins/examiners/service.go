package examiners

import (
	"context"
	"fmt"
	"strings"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/sanitize"
)

// ExaminerService handles business logic for examiners.
type ExaminerService interface {
	List(ctx context.Context) ([]Examiner, error)
	Create(ctx context.Context, req ExaminerRequest) (*Examiner, error)
	Update(ctx context.Context, id int64, req ExaminerRequest) (*Examiner, error)
	Delete(ctx context.Context, id int64) error
}

type examinerService struct {
	repo ExaminerRepository
}

// NewExaminerService creates a new examiner service.
func NewExaminerService(repo ExaminerRepository) ExaminerService {
	return &examinerService{repo: repo}
}

func (s *examinerService) List(ctx context.Context) ([]Examiner, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (s *examinerService) Create(ctx context.Context, req ExaminerRequest) (*Examiner, error) {
	e, err := clean(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, passThrough(err)
	}
	return s.reload(ctx, e), nil
}

func (s *examinerService) Update(ctx context.Context, id int64, req ExaminerRequest) (*Examiner, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, passThrough(err)
	}
	e, err := clean(req)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, passThrough(err)
	}
	return s.reload(ctx, e), nil
}

func (s *examinerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return passThrough(err)
	}
	return nil
}

// reload returns the view row, which carries the subject name.
func (s *examinerService) reload(ctx context.Context, e *Examiner) *Examiner {
	if full, err := s.repo.FindByID(ctx, e.ID); err == nil {
		return full
	}
	return e
}

func clean(req ExaminerRequest) (*Examiner, error) {
	e := &Examiner{
		ExaminerName: sanitize.Text(req.ExaminerName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        sanitize.Text(req.Phone),
		SubjectID:    req.SubjectID,
	}
	if e.ExaminerName == "" {
		return nil, apperror.NewValidation("examiner_name is required", "examiner_name")
	}
	return e, nil
}

func passThrough(err error) error {
	if apperror.As(err) != nil {
		return err
	}
	return apperror.NewInternal(fmt.Errorf("examiner store: %w", err))
}
