package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

func runGateway(t *testing.T, issuer *TokenIssuer, header string) (*Identity, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *Identity
	err := RequireAuth(issuer)(func(c echo.Context) error {
		seen = GetIdentity(c)
		return nil
	})(c)
	return seen, err
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	for _, header := range []string{"", "Basic dXNlcjpwdw==", "Bearer", "Bearer   "} {
		seen, err := runGateway(t, issuer, header)
		appErr := assertAppError(t, err, http.StatusUnauthorized)
		if appErr.Type != TypeMissingCredential {
			t.Errorf("header %q: expected missing_credential, got %q", header, appErr.Type)
		}
		if seen != nil {
			t.Errorf("header %q: handler must not run", header)
		}
	}
}

func TestRequireAuth_InvalidAndExpiredLookTheSame(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	past := NewTokenIssuer(testSecret, time.Hour)
	past.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, _ := past.Issue(Identity{UserID: 1, Role: RoleAdmin})

	_, errInvalid := runGateway(t, issuer, "Bearer not-a-token")
	_, errExpired := runGateway(t, issuer, "Bearer "+expired)

	a := assertAppError(t, errInvalid, http.StatusUnauthorized)
	b := assertAppError(t, errExpired, http.StatusUnauthorized)
	if a.Message != b.Message || a.Type != b.Type {
		t.Errorf("expected identical responses, got %+v and %+v", a, b)
	}
	if a.Type != apperror.TypeUnauthorized {
		t.Errorf("expected unauthorized type, got %q", a.Type)
	}
}

func TestRequireAuth_Valid(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	examiner := int64(8)
	token, _, _ := issuer.Issue(Identity{UserID: 5, Username: "moe", Role: RoleExaminer, ExaminerID: &examiner})

	seen, err := runGateway(t, issuer, "bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == nil || seen.UserID != 5 || seen.Role != RoleExaminer {
		t.Fatalf("unexpected identity %+v", seen)
	}
	if seen.ExaminerID == nil || *seen.ExaminerID != 8 {
		t.Errorf("expected examiner reference 8, got %v", seen.ExaminerID)
	}
}
