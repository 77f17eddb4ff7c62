package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/middleware"
)

type handlerFixture struct {
	e        *echo.Echo
	h        *Handler
	sessions *mockSessionStore
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	sessions := &mockSessionStore{}
	svc, _ := newTestAuthService(newMemoryUserRepo(), sessions)

	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	return &handlerFixture{
		e:        e,
		h:        NewHandler(svc, time.Hour, false),
		sessions: sessions,
	}
}

func (f *handlerFixture) post(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return f.e.NewContext(req, rec), rec
}

func TestHandler_RegisterAndLogin(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.post("/auth/register", `{"username":"nora","email":"n@x.com","password":"secret1","role":"coordinator"}`)
	if err := f.h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var reg RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reg.ID == 0 || reg.Role != RoleCoordinator {
		t.Errorf("unexpected registration %+v", reg)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not echo the password or its hash")
	}

	c, rec = f.post("/auth/login", `{"username":"nora","password":"secret1"}`)
	if err := f.h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	var login LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if login.Token == "" || login.User == nil || login.User.Role != RoleCoordinator {
		t.Errorf("unexpected login response %s", rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName || !cookies[0].HttpOnly {
		t.Fatalf("expected HttpOnly session cookie, got %+v", cookies)
	}
	if cookies[0].Value != testSessionID {
		t.Errorf("cookie does not carry the session id: %q", cookies[0].Value)
	}
}

func TestHandler_RegisterValidation(t *testing.T) {
	f := newHandlerFixture(t)

	c, _ := f.post("/auth/register", `{"username":"nora","email":"not-an-email","password":"123"}`)
	appErr := assertAppError(t, f.h.Register(c), http.StatusBadRequest)
	if len(appErr.Fields) != 2 {
		t.Errorf("expected email and password fields, got %v", appErr.Fields)
	}
}

func TestHandler_RegisterMultibytePasswordOverBcryptLimit(t *testing.T) {
	f := newHandlerFixture(t)

	body := `{"username":"nora","email":"n@x.com","password":"` + strings.Repeat("é", 40) + `"}`
	c, _ := f.post("/auth/register", body)
	appErr := assertAppError(t, f.h.Register(c), http.StatusBadRequest)
	if appErr.Type != apperror.TypeValidation {
		t.Errorf("expected validation_error, got %q", appErr.Type)
	}
}

func TestHandler_Logout(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.post("/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: sessionCookieName, Value: "0b6c1f2e-7a4d-4e3b-8c9a-1d2e3f4a5b6c"})
	if err := f.h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Logged out successfully") {
		t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if len(f.sessions.destroyed) != 1 || f.sessions.destroyed[0] != "0b6c1f2e-7a4d-4e3b-8c9a-1d2e3f4a5b6c" {
		t.Errorf("expected the cookie's session destroyed, got %v", f.sessions.destroyed)
	}
}

func TestHandler_LogoutIgnoresMalformedCookie(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.post("/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: sessionCookieName, Value: "someone-else.bad"})
	if err := f.h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(f.sessions.destroyed) != 0 {
		t.Errorf("malformed cookie must not reach the store, got %v", f.sessions.destroyed)
	}
}

func TestHandler_Verify(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.post("/auth/verify", "")
	SetIdentity(c, &Identity{UserID: 3, Username: "oli", Role: RoleExaminer})
	if err := f.h.Verify(c); err != nil {
		t.Fatalf("verify: %v", err)
	}
	var resp VerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Valid || resp.User == nil || resp.User.Role != RoleExaminer {
		t.Errorf("unexpected verify response %s", rec.Body.String())
	}

	c, _ = f.post("/auth/verify", "")
	assertAppError(t, f.h.Verify(c), http.StatusInternalServerError)
}

func TestHandler_SetStatusBadID(t *testing.T) {
	f := newHandlerFixture(t)

	c, _ := f.post("/users/x/status", `{"is_active":false}`)
	c.SetParamNames("id")
	c.SetParamValues("x")
	SetIdentity(c, &Identity{UserID: 1, Role: RoleAdmin})
	assertAppError(t, f.h.SetStatus(c), http.StatusBadRequest)
}
