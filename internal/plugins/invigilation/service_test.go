package invigilation

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/plugins/audit"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
)

// --- Mock Repository ---

type mockAssignmentRepo struct {
	listFn     func(ctx context.Context, examinerID *int64) ([]Assignment, error)
	findByIDFn func(ctx context.Context, id int64) (*Assignment, error)
	createFn   func(ctx context.Context, a *Assignment) error
	updateFn   func(ctx context.Context, a *Assignment) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockAssignmentRepo) List(ctx context.Context, examinerID *int64) ([]Assignment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, examinerID)
	}
	return nil, nil
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id int64) (*Assignment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &Assignment{ID: id, ExaminerName: "Dr. Rao"}, nil
}

func (m *mockAssignmentRepo) Create(ctx context.Context, a *Assignment) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	a.ID = 10
	return nil
}

func (m *mockAssignmentRepo) Update(ctx context.Context, a *Assignment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return nil
}

func (m *mockAssignmentRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type recordingAudit struct {
	entries []*audit.Entry
}

func (r *recordingAudit) Log(_ context.Context, e *audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingAudit) Record(ctx context.Context, e *audit.Entry) { _ = r.Log(ctx, e) }

func (r *recordingAudit) List(context.Context, audit.Filter, int) ([]audit.Entry, int, error) {
	return nil, 0, nil
}

// --- Helpers ---

var coordinator = auth.Identity{UserID: 2, Username: "coord", Role: auth.RoleCoordinator}

func validInput() AssignmentInput {
	return AssignmentInput{ExaminerID: 1, SchoolID: 1, SubjectID: 1, ExamDate: "2025-06-01", ExamSession: "Morning"}
}

func newTestService(repo AssignmentRepository) (InvigilationService, *recordingAudit) {
	rec := &recordingAudit{}
	return NewInvigilationService(repo, NewValidator(newFakeLookup()), rec), rec
}

func assertAppError(t *testing.T, err error, expectedCode int) *apperror.AppError {
	t.Helper()
	appErr := apperror.As(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (%s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	var written *Assignment
	repo := &mockAssignmentRepo{
		createFn: func(_ context.Context, a *Assignment) error {
			a.ID = 10
			written = a
			return nil
		},
	}
	svc, rec := newTestService(repo)

	input := validInput()
	input.ExamSession = "  <b>Morning</b> "
	a, err := svc.Create(context.Background(), coordinator, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written.ExamSession != "Morning" {
		t.Errorf("expected sanitized session, got %q", written.ExamSession)
	}
	if a.ID != 10 || a.ExaminerName != "Dr. Rao" {
		t.Errorf("expected reloaded details row, got %+v", a)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != audit.ActionAssignmentCreated {
		t.Fatalf("expected a creation audit entry, got %+v", rec.entries)
	}
	if *rec.entries[0].UserID != coordinator.UserID {
		t.Errorf("expected actor %d, got %d", coordinator.UserID, *rec.entries[0].UserID)
	}
}

func TestCreate_ValidatorRunsBeforeWrite(t *testing.T) {
	called := false
	repo := &mockAssignmentRepo{
		createFn: func(context.Context, *Assignment) error { called = true; return nil },
	}
	svc, rec := newTestService(repo)

	input := validInput()
	input.ExaminerID = 999
	_, err := svc.Create(context.Background(), coordinator, input)
	appErr := assertAppError(t, err, http.StatusBadRequest)
	if appErr.Type != TypeUnknownExaminer {
		t.Errorf("expected unknown_examiner, got %q", appErr.Type)
	}
	if called {
		t.Error("repository must not be reached when validation fails")
	}
	if len(rec.entries) != 0 {
		t.Error("failed writes must not be audited")
	}
}

func TestCreate_EmptySessionAfterSanitize(t *testing.T) {
	svc, _ := newTestService(&mockAssignmentRepo{})

	input := validInput()
	input.ExamSession = "<script></script>"
	_, err := svc.Create(context.Background(), coordinator, input)
	assertAppError(t, err, http.StatusBadRequest)
}

func TestCreate_StoreFailure(t *testing.T) {
	repo := &mockAssignmentRepo{
		createFn: func(context.Context, *Assignment) error { return errors.New("disk full") },
	}
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), coordinator, validInput())
	assertAppError(t, err, http.StatusInternalServerError)
}

func TestUpdate_AppliesValidator(t *testing.T) {
	svc, _ := newTestService(&mockAssignmentRepo{})

	input := validInput()
	input.ExamDate = "2025-02-30"
	_, err := svc.Update(context.Background(), coordinator, 4, input)
	appErr := assertAppError(t, err, http.StatusBadRequest)
	if appErr.Type != TypeInvalidDate {
		t.Errorf("expected invalid_date, got %q", appErr.Type)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockAssignmentRepo{
		findByIDFn: func(context.Context, int64) (*Assignment, error) {
			return nil, apperror.NewNotFound("invigilation assignment not found")
		},
	}
	svc, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), coordinator, 404, validInput())
	assertAppError(t, err, http.StatusNotFound)
}

func TestUpdate_Success(t *testing.T) {
	var updated *Assignment
	repo := &mockAssignmentRepo{
		updateFn: func(_ context.Context, a *Assignment) error { updated = a; return nil },
	}
	svc, rec := newTestService(repo)

	if _, err := svc.Update(context.Background(), coordinator, 4, validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != 4 || updated.ExamDate != "2025-06-01" {
		t.Errorf("unexpected update %+v", updated)
	}
	if rec.entries[0].Action != audit.ActionAssignmentUpdated || rec.entries[0].EntityID != 4 {
		t.Errorf("unexpected audit entry %+v", rec.entries[0])
	}
}

func TestDelete(t *testing.T) {
	repo := &mockAssignmentRepo{
		deleteFn: func(_ context.Context, id int64) error {
			if id != 4 {
				return apperror.NewNotFound("invigilation assignment not found")
			}
			return nil
		},
	}
	svc, rec := newTestService(repo)

	if err := svc.Delete(context.Background(), coordinator, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.entries[0].Action != audit.ActionAssignmentDeleted {
		t.Errorf("expected delete audit entry, got %+v", rec.entries[0])
	}

	assertAppError(t, svc.Delete(context.Background(), coordinator, 5), http.StatusNotFound)
}

func TestListMine(t *testing.T) {
	var gotExaminer *int64
	repo := &mockAssignmentRepo{
		listFn: func(_ context.Context, examinerID *int64) ([]Assignment, error) {
			gotExaminer = examinerID
			return []Assignment{{ID: 1, ExaminerID: *examinerID}}, nil
		},
	}
	svc, _ := newTestService(repo)

	unlinked := auth.Identity{UserID: 3, Role: auth.RoleExaminer}
	out, err := svc.ListMine(context.Background(), unlinked)
	if err != nil || len(out) != 0 {
		t.Fatalf("expected no duties for an unlinked examiner, got %v %v", out, err)
	}
	if gotExaminer != nil {
		t.Error("repository must not be queried without an examiner link")
	}

	examinerID := int64(7)
	linked := auth.Identity{UserID: 3, Role: auth.RoleExaminer, ExaminerID: &examinerID}
	out, err = svc.ListMine(context.Background(), linked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotExaminer == nil || *gotExaminer != 7 || len(out) != 1 {
		t.Errorf("expected examiner 7 duties, got %v", out)
	}
}
