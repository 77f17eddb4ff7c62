package schools

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

type mockSchoolRepo struct {
	listFn     func(ctx context.Context) ([]School, error)
	findByIDFn func(ctx context.Context, id int64) (*School, error)
	createFn   func(ctx context.Context, s *School) error
	updateFn   func(ctx context.Context, s *School) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockSchoolRepo) List(ctx context.Context) ([]School, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockSchoolRepo) FindByID(ctx context.Context, id int64) (*School, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("school not found")
}

func (m *mockSchoolRepo) Create(ctx context.Context, s *School) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	s.ID = 1
	return nil
}

func (m *mockSchoolRepo) Update(ctx context.Context, s *School) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, s)
	}
	return nil
}

func (m *mockSchoolRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
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

func TestCreate_SanitizesInput(t *testing.T) {
	var stored *School
	repo := &mockSchoolRepo{
		createFn: func(_ context.Context, s *School) error {
			s.ID = 3
			stored = s
			return nil
		},
	}
	svc := NewSchoolService(repo)

	school, err := svc.Create(context.Background(), SchoolRequest{
		SchoolName: "  St. <i>Mary's</i>   High ",
		Location:   "<script>x</script>Pune",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.SchoolName != "St. Mary's High" || stored.Location != "Pune" {
		t.Errorf("unexpected stored school %+v", stored)
	}
	// FindByID is not stubbed, so the freshly written row comes back.
	if school.ID != 3 {
		t.Errorf("expected id 3, got %d", school.ID)
	}
}

func TestCreate_NameOnlyMarkup(t *testing.T) {
	svc := NewSchoolService(&mockSchoolRepo{})

	_, err := svc.Create(context.Background(), SchoolRequest{SchoolName: "<b></b>"})
	appErr := assertAppError(t, err, http.StatusBadRequest)
	if len(appErr.Fields) != 1 || appErr.Fields[0] != "school_name" {
		t.Errorf("expected school_name field, got %v", appErr.Fields)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewSchoolService(&mockSchoolRepo{})

	_, err := svc.Update(context.Background(), 9, SchoolRequest{SchoolName: "X"})
	assertAppError(t, err, http.StatusNotFound)
}

func TestUpdate_Success(t *testing.T) {
	repo := &mockSchoolRepo{
		findByIDFn: func(_ context.Context, id int64) (*School, error) {
			return &School{ID: id, SchoolName: "Renamed"}, nil
		},
	}
	svc := NewSchoolService(repo)

	school, err := svc.Update(context.Background(), 9, SchoolRequest{SchoolName: "Renamed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if school.ID != 9 || school.SchoolName != "Renamed" {
		t.Errorf("unexpected school %+v", school)
	}
}

func TestDelete_PassesDomainErrors(t *testing.T) {
	repo := &mockSchoolRepo{
		deleteFn: func(context.Context, int64) error {
			return apperror.NewBadRequest("school still has students or invigilation assignments")
		},
	}
	assertAppError(t, NewSchoolService(repo).Delete(context.Background(), 1), http.StatusBadRequest)
}

func TestList_StoreFailure(t *testing.T) {
	repo := &mockSchoolRepo{
		listFn: func(context.Context) ([]School, error) { return nil, errors.New("timeout") },
	}
	_, err := NewSchoolService(repo).List(context.Background())
	assertAppError(t, err, http.StatusInternalServerError)
}
