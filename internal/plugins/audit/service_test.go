package audit

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

type mockAuditRepo struct {
	logFn  func(ctx context.Context, entry *Entry) error
	listFn func(ctx context.Context, f Filter, limit, offset int) ([]Entry, int, error)
}

func (m *mockAuditRepo) Log(ctx context.Context, entry *Entry) error {
	if m.logFn != nil {
		return m.logFn(ctx, entry)
	}
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Entry, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, limit, offset)
	}
	return nil, 0, nil
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	appErr := apperror.As(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d", expectedCode, appErr.Code)
	}
}

func TestLog_RequiresAction(t *testing.T) {
	svc := NewAuditService(&mockAuditRepo{})
	err := svc.Log(context.Background(), &Entry{EntityType: EntityUser})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestLog_Persists(t *testing.T) {
	var stored *Entry
	svc := NewAuditService(&mockAuditRepo{
		logFn: func(_ context.Context, entry *Entry) error {
			stored = entry
			return nil
		},
	})

	entry := &Entry{Action: ActionAssignmentCreated, EntityType: EntityAssignment, EntityID: 7}
	if err := svc.Log(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != entry {
		t.Error("expected the entry to reach the repository")
	}
}

func TestRecord_SwallowsFailure(t *testing.T) {
	called := false
	svc := NewAuditService(&mockAuditRepo{
		logFn: func(context.Context, *Entry) error {
			called = true
			return errors.New("db down")
		},
	})

	svc.Record(context.Background(), &Entry{Action: ActionUserActivated, EntityType: EntityUser, EntityID: 1})
	if !called {
		t.Error("expected Record to attempt the write")
	}
}

func TestList_ClampsPage(t *testing.T) {
	var gotOffset, gotLimit int
	svc := NewAuditService(&mockAuditRepo{
		listFn: func(_ context.Context, _ Filter, limit, offset int) ([]Entry, int, error) {
			gotLimit, gotOffset = limit, offset
			return []Entry{{ID: 1}}, 1, nil
		},
	})

	if _, _, err := svc.List(context.Background(), Filter{}, -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 0 || gotLimit != perPage {
		t.Errorf("expected first page, got limit=%d offset=%d", gotLimit, gotOffset)
	}

	_, _, _ = svc.List(context.Background(), Filter{}, 3)
	if gotOffset != 2*perPage {
		t.Errorf("expected offset %d, got %d", 2*perPage, gotOffset)
	}

	_, _, _ = svc.List(context.Background(), Filter{}, math.MaxInt)
	if gotOffset < 0 || gotOffset != (maxPage-1)*perPage {
		t.Errorf("expected huge pages clamped to offset %d, got %d", (maxPage-1)*perPage, gotOffset)
	}
}

func TestList_WrapsRepoError(t *testing.T) {
	svc := NewAuditService(&mockAuditRepo{
		listFn: func(context.Context, Filter, int, int) ([]Entry, int, error) {
			return nil, 0, errors.New("timeout")
		},
	})
	_, _, err := svc.List(context.Background(), Filter{}, 1)
	assertAppError(t, err, http.StatusInternalServerError)
}
