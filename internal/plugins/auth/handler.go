package auth

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/middleware"
)

// sessionCookieName is the HTTP cookie carrying the session id.
const sessionCookieName = "examboard_session"

// Handler handles the auth and user-management endpoints. Handlers are thin:
// they bind the request, call the service, and write the response.
type Handler struct {
	service AuthService
	ttl     time.Duration
	secure  bool
}

// NewHandler creates a new auth handler. ttl bounds the session cookie.
func NewHandler(service AuthService, ttl time.Duration, secureCookies bool) *Handler {
	return &Handler{service: service, ttl: ttl, secure: secureCookies}
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// VerifyResponse is the body of GET /auth/verify.
type VerifyResponse struct {
	Valid bool      `json:"valid"`
	User  *Identity `json:"user"`
}

// UserListResponse is the paginated admin user listing.
type UserListResponse struct {
	Users   []User `json:"users"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// Register creates an account (POST /auth/register).
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Role:       Role(req.Role),
		ExaminerID: req.ExaminerID,
		SchoolID:   req.SchoolID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

// Login authenticates and returns a bearer token (POST /auth/login). The
// session id travels back in an HttpOnly cookie.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, result.SessionID)
	return c.JSON(http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

// Logout destroys the session named by the cookie (POST /auth/logout). A
// missing or malformed cookie has nothing to destroy and still succeeds.
func (h *Handler) Logout(c echo.Context) error {
	var sessionID string
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		sessionID = sessionIDFromCookie(cookie.Value)
	}

	if err := h.service.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Verify echoes the caller's identity (GET /auth/verify).
func (h *Handler) Verify(c echo.Context) error {
	id := GetIdentity(c)
	if id == nil {
		return apperror.NewMissingContext()
	}
	return c.JSON(http.StatusOK, VerifyResponse{Valid: true, User: id})
}

// ListUsers returns a page of accounts (GET /users?page=).
func (h *Handler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	page = min(max(page, 1), maxUsersPage)

	users, total, err := h.service.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	if users == nil {
		users = []User{}
	}
	return c.JSON(http.StatusOK, UserListResponse{Users: users, Total: total, Page: page, PerPage: usersPerPage})
}

// Provision creates an account with an explicit role (POST /users).
func (h *Handler) Provision(c echo.Context) error {
	actor := GetIdentity(c)
	if actor == nil {
		return apperror.NewMissingContext()
	}

	var req ProvisionRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Provision(c.Request().Context(), *actor, RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Role:       Role(req.Role),
		ExaminerID: req.ExaminerID,
		SchoolID:   req.SchoolID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// SetStatus activates or deactivates an account (PATCH /users/:id/status).
func (h *Handler) SetStatus(c echo.Context) error {
	actor := GetIdentity(c)
	if actor == nil {
		return apperror.NewMissingContext()
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperror.NewBadRequest("invalid user id")
	}

	var req StatusRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.SetActive(c.Request().Context(), *actor, id, *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// --- Cookie helpers ---

// setSessionCookie stores the session id. HttpOnly keeps it away
// from scripts; it only matters to logout.
func (h *Handler) setSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.ttl.Seconds()),
	})
}

func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// sessionIDFromCookie accepts only values shaped like the ids the store
// issues, so arbitrary cookie content never reaches Redis.
func sessionIDFromCookie(value string) string {
	id, err := uuid.Parse(value)
	if err != nil {
		return ""
	}
	return id.String()
}
