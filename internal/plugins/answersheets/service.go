package answersheets

import (
	"context"
	"fmt"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/plugins/audit"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
)

// AnswerSheetService handles business logic for answer sheets.
type AnswerSheetService interface {
	// List returns the sheets visible to caller. Examiners see only sheets
	// allotted to their linked examiner; an unlinked examiner sees none.
	List(ctx context.Context, caller auth.Identity) ([]AnswerSheet, error)
	Create(ctx context.Context, req CreateRequest) (*AnswerSheet, error)

	// Evaluate records marks. Examiners may only evaluate their own sheets.
	Evaluate(ctx context.Context, caller auth.Identity, id int64, marks float64) (*AnswerSheet, error)
}

type answerSheetService struct {
	repo  AnswerSheetRepository
	audit audit.AuditService
}

// NewAnswerSheetService creates the service. auditSvc may be nil.
func NewAnswerSheetService(repo AnswerSheetRepository, auditSvc audit.AuditService) AnswerSheetService {
	return &answerSheetService{repo: repo, audit: auditSvc}
}

func (s *answerSheetService) List(ctx context.Context, caller auth.Identity) ([]AnswerSheet, error) {
	var scope *int64
	if caller.Role == auth.RoleExaminer {
		if caller.ExaminerID == nil {
			return nil, nil
		}
		scope = caller.ExaminerID
	}

	out, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (s *answerSheetService) Create(ctx context.Context, req CreateRequest) (*AnswerSheet, error) {
	sheet := &AnswerSheet{
		StudentID:  req.StudentID,
		SubjectID:  req.SubjectID,
		ExaminerID: req.ExaminerID,
		MaxMarks:   DefaultMaxMarks,
		Status:     StatusPending,
	}
	if req.MaxMarks != nil {
		if *req.MaxMarks <= 0 || *req.MaxMarks > MarksLimit {
			return nil, apperror.NewValidation(
				fmt.Sprintf("max_marks must be greater than 0 and at most %.2f", MarksLimit), "max_marks")
		}
		sheet.MaxMarks = *req.MaxMarks
	}

	if err := s.repo.Create(ctx, sheet); err != nil {
		return nil, passThrough(err)
	}
	if full, err := s.repo.FindByID(ctx, sheet.ID); err == nil {
		return full, nil
	}
	return sheet, nil
}

func (s *answerSheetService) Evaluate(ctx context.Context, caller auth.Identity, id int64, marks float64) (*AnswerSheet, error) {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passThrough(err)
	}

	if caller.Role == auth.RoleExaminer && !sameExaminer(caller.ExaminerID, sheet.ExaminerID) {
		return nil, apperror.NewForbidden("you can only evaluate answer sheets allotted to you")
	}
	if marks < 0 || marks > sheet.MaxMarks {
		return nil, apperror.NewValidation(
			fmt.Sprintf("marks_obtained must be between 0 and %g", sheet.MaxMarks), "marks_obtained")
	}

	if err := s.repo.Evaluate(ctx, id, marks); err != nil {
		return nil, passThrough(err)
	}

	if s.audit != nil {
		userID := caller.UserID
		s.audit.Record(ctx, &audit.Entry{
			UserID:     &userID,
			Username:   caller.Username,
			Action:     audit.ActionAnswerSheetEvaluated,
			EntityType: audit.EntityAnswerSheet,
			EntityID:   id,
			Details:    map[string]any{"marks_obtained": marks, "max_marks": sheet.MaxMarks},
		})
	}

	if full, err := s.repo.FindByID(ctx, id); err == nil {
		return full, nil
	}
	sheet.MarksObtained = &marks
	sheet.Status = StatusEvaluated
	return sheet, nil
}

func sameExaminer(caller, owner *int64) bool {
	return caller != nil && owner != nil && *caller == *owner
}

func passThrough(err error) error {
	if apperror.As(err) != nil {
		return err
	}
	return apperror.NewInternal(fmt.Errorf("answer sheet store: %w", err))
}
