package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/routing"
)

const (
	opRead  routing.Operation = "things.read"
	opWrite routing.Operation = "things.write"
)

func testPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(map[routing.Operation]RoleSet{
		opRead:  Roles(RoleAdmin, RoleCoordinator, RoleExaminer),
		opWrite: Roles(RoleCoordinator),
	})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	return p
}

func TestPolicy_Check(t *testing.T) {
	p := testPolicy(t)

	tests := []struct {
		role Role
		op   routing.Operation
		ok   bool
	}{
		{RoleExaminer, opRead, true},
		{RoleExaminer, opWrite, false},
		{RoleCoordinator, opWrite, true},
		// Admin has no implicit rights beyond the table.
		{RoleAdmin, opWrite, false},
		{RoleAdmin, "undeclared.op", false},
	}
	for _, tt := range tests {
		err := p.Check(tt.role, tt.op)
		if tt.ok && err != nil {
			t.Errorf("%s/%s: unexpected error %v", tt.role, tt.op, err)
		}
		if !tt.ok {
			assertAppError(t, err, http.StatusForbidden)
		}
	}
}

func TestNewPolicy_RejectsBadTables(t *testing.T) {
	if _, err := NewPolicy(map[routing.Operation]RoleSet{opRead: Roles()}); err == nil {
		t.Error("expected error for an operation with no roles")
	}
	if _, err := NewPolicy(map[routing.Operation]RoleSet{opRead: Roles("root")}); err == nil {
		t.Error("expected error for an unknown role")
	}
}

func TestPolicy_Allowed(t *testing.T) {
	got := testPolicy(t).Allowed(opRead)
	want := []Role{RoleAdmin, RoleCoordinator, RoleExaminer}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestPolicy_Require(t *testing.T) {
	p := testPolicy(t)
	e := echo.New()
	handler := p.Require(opWrite)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	newCtx := func(id *Identity) (echo.Context, *httptest.ResponseRecorder) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/things", nil), rec)
		if id != nil {
			SetIdentity(c, id)
		}
		return c, rec
	}

	c, _ := newCtx(nil)
	assertAppError(t, handler(c), http.StatusUnauthorized)

	c, _ = newCtx(&Identity{UserID: 1, Role: RoleExaminer})
	assertAppError(t, handler(c), http.StatusForbidden)

	c, rec := newCtx(&Identity{UserID: 2, Role: RoleCoordinator})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
