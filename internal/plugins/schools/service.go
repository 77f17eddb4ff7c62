package schools

import (
	"context"
	"fmt"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/sanitize"
)

// SchoolService handles business logic for schools.
type SchoolService interface {
	List(ctx context.Context) ([]School, error)
	Create(ctx context.Context, req SchoolRequest) (*School, error)
	Update(ctx context.Context, id int64, req SchoolRequest) (*School, error)
	Delete(ctx context.Context, id int64) error
}

type schoolService struct {
	repo SchoolRepository
}

// NewSchoolService creates a new school service.
func NewSchoolService(repo SchoolRepository) SchoolService {
	return &schoolService{repo: repo}
}

func (s *schoolService) List(ctx context.Context) ([]School, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (s *schoolService) Create(ctx context.Context, req SchoolRequest) (*School, error) {
	school, err := clean(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, school); err != nil {
		return nil, passThrough(err)
	}
	return s.reload(ctx, school)
}

func (s *schoolService) Update(ctx context.Context, id int64, req SchoolRequest) (*School, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, passThrough(err)
	}
	school, err := clean(req)
	if err != nil {
		return nil, err
	}
	school.ID = id
	if err := s.repo.Update(ctx, school); err != nil {
		return nil, passThrough(err)
	}
	return s.reload(ctx, school)
}

func (s *schoolService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return passThrough(err)
	}
	return nil
}

// reload picks up server-side defaults such as created_at.
func (s *schoolService) reload(ctx context.Context, school *School) (*School, error) {
	full, err := s.repo.FindByID(ctx, school.ID)
	if err != nil {
		return school, nil
	}
	return full, nil
}

func clean(req SchoolRequest) (*School, error) {
	school := &School{
		SchoolName: sanitize.Text(req.SchoolName),
		Location:   sanitize.Text(req.Location),
	}
	if school.SchoolName == "" {
		return nil, apperror.NewValidation("school_name is required", "school_name")
	}
	return school, nil
}

func passThrough(err error) error {
	if apperror.As(err) != nil {
		return err
	}
	return apperror.NewInternal(fmt.Errorf("school store: %w", err))
}
