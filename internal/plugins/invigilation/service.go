package invigilation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/plugins/audit"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
	"github.com/keyxmakerx/examboard/internal/sanitize"
)

// InvigilationService handles business logic for assignments.
type InvigilationService interface {
	List(ctx context.Context) ([]Assignment, error)

	// ListMine returns the duties of the caller's linked examiner. A caller
	// with no examiner link has no duties.
	ListMine(ctx context.Context, caller auth.Identity) ([]Assignment, error)

	Create(ctx context.Context, actor auth.Identity, input AssignmentInput) (*Assignment, error)
	Update(ctx context.Context, actor auth.Identity, id int64, input AssignmentInput) (*Assignment, error)
	Delete(ctx context.Context, actor auth.Identity, id int64) error
}

type invigilationService struct {
	repo      AssignmentRepository
	validator *Validator
	audit     audit.AuditService
}

// NewInvigilationService creates the service. auditSvc may be nil.
func NewInvigilationService(repo AssignmentRepository, validator *Validator, auditSvc audit.AuditService) InvigilationService {
	return &invigilationService{repo: repo, validator: validator, audit: auditSvc}
}

func (s *invigilationService) List(ctx context.Context) ([]Assignment, error) {
	out, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (s *invigilationService) ListMine(ctx context.Context, caller auth.Identity) ([]Assignment, error) {
	if caller.ExaminerID == nil {
		return nil, nil
	}
	out, err := s.repo.List(ctx, caller.ExaminerID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (s *invigilationService) Create(ctx context.Context, actor auth.Identity, input AssignmentInput) (*Assignment, error) {
	a, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, passThrough(err)
	}

	s.record(ctx, actor, audit.ActionAssignmentCreated, a)
	return s.reload(ctx, a)
}

func (s *invigilationService) Update(ctx context.Context, actor auth.Identity, id int64, input AssignmentInput) (*Assignment, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, passThrough(err)
	}

	a, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	a.ID = id
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, passThrough(err)
	}

	s.record(ctx, actor, audit.ActionAssignmentUpdated, a)
	return s.reload(ctx, a)
}

func (s *invigilationService) Delete(ctx context.Context, actor auth.Identity, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return passThrough(err)
	}
	s.record(ctx, actor, audit.ActionAssignmentDeleted, &Assignment{ID: id})
	return nil
}

// prepare runs the validator and builds the row to write.
func (s *invigilationService) prepare(ctx context.Context, input AssignmentInput) (*Assignment, error) {
	session := sanitize.Text(input.ExamSession)
	if session == "" {
		return nil, apperror.NewValidation("exam_session is required", "exam_session")
	}
	if err := s.validator.Validate(ctx, input.ExaminerID, input.SchoolID, input.SubjectID, input.ExamDate); err != nil {
		return nil, err
	}
	return &Assignment{
		ExaminerID:  input.ExaminerID,
		SchoolID:    input.SchoolID,
		SubjectID:   input.SubjectID,
		ExamDate:    input.ExamDate,
		ExamSession: session,
	}, nil
}

// reload re-reads the written row through the details view. The write has
// already succeeded, so a failed reload falls back to the bare row.
func (s *invigilationService) reload(ctx context.Context, a *Assignment) (*Assignment, error) {
	full, err := s.repo.FindByID(ctx, a.ID)
	if err != nil {
		slog.Warn("reloading assignment failed",
			slog.Int64("assignment_id", a.ID),
			slog.Any("error", err),
		)
		return a, nil
	}
	return full, nil
}

func (s *invigilationService) record(ctx context.Context, actor auth.Identity, action string, a *Assignment) {
	if s.audit == nil {
		return
	}
	userID := actor.UserID
	entry := &audit.Entry{
		UserID:     &userID,
		Username:   actor.Username,
		Action:     action,
		EntityType: audit.EntityAssignment,
		EntityID:   a.ID,
	}
	if action != audit.ActionAssignmentDeleted {
		entry.Details = map[string]any{
			"examiner_id":  a.ExaminerID,
			"school_id":    a.SchoolID,
			"subject_id":   a.SubjectID,
			"exam_date":    a.ExamDate,
			"exam_session": a.ExamSession,
		}
	}
	s.audit.Record(ctx, entry)
}

// passThrough keeps domain errors and wraps everything else as a 500.
func passThrough(err error) error {
	if apperror.As(err) != nil {
		return err
	}
	return apperror.NewInternal(fmt.Errorf("invigilation store: %w", err))
}
