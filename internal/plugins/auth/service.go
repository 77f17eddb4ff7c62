package auth

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/plugins/audit"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// MaxPasswordBytes is bcrypt's input limit. It counts bytes, so a password
// of multibyte characters reaches it well before 72 characters.
const MaxPasswordBytes = 72

// invalidCredentials is the single login failure message, so callers cannot
// tell an unknown username from a wrong password.
const invalidCredentials = "Invalid credentials"

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	// Register is open self-registration. The caller's requested role and
	// examiner/school links are stored as given (role defaults to examiner),
	// so any client can create an admin, or an examiner account linked to an
	// existing examiner record and see that examiner's answer sheets.
	// Deployments that need vetted roles should provision accounts through
	// Provision and keep /auth/register off the public edge.
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error

	// Provision creates an account on behalf of an administrator.
	Provision(ctx context.Context, actor Identity, input RegisterInput) (*User, error)
	ListUsers(ctx context.Context, page int) ([]User, int, error)
	SetActive(ctx context.Context, actor Identity, userID int64, active bool) (*User, error)
}

// usersPerPage is the admin user listing page size.
const usersPerPage = 25

// maxUsersPage keeps the listing offset inside a signed 32-bit OFFSET.
const maxUsersPage = math.MaxInt32 / usersPerPage

type authService struct {
	repo     UserRepository
	hasher   PasswordHasher
	tokens   *TokenIssuer
	sessions SessionStore

	audit  audit.AuditService
	logins *prometheus.CounterVec
}

// Option configures optional AuthService collaborators.
type Option func(*authService)

// WithAuditService records account changes in the audit trail.
func WithAuditService(svc audit.AuditService) Option {
	return func(s *authService) { s.audit = svc }
}

// WithLoginCounter counts login outcomes.
func WithLoginCounter(c *prometheus.CounterVec) Option {
	return func(s *authService) { s.logins = c }
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens *TokenIssuer, sessions SessionStore, opts ...Option) AuthService {
	s := &authService{repo: repo, hasher: hasher, tokens: tokens, sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewLoginCounter registers examboard_auth_logins_total{outcome}.
func NewLoginCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "examboard",
		Name:      "auth_logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(c)
	return c
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	user, err := s.create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, nil, audit.ActionUserRegistered, user)
	return user, nil
}

func (s *authService) Provision(ctx context.Context, actor Identity, input RegisterInput) (*User, error) {
	user, err := s.create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &actor, audit.ActionUserProvisioned, user)
	return user, nil
}

// create validates the input, hashes the password, and stores the account.
// Uniqueness is left to the store's unique indexes so concurrent duplicates
// resolve to exactly one winner.
func (s *authService) create(ctx context.Context, input RegisterInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperror.NewValidation("missing required fields", missing...)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength), "password")
	}
	if len(input.Password) > MaxPasswordBytes {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must not exceed %d bytes", MaxPasswordBytes), "password")
	}

	role := input.Role
	if role == "" {
		role = RoleExaminer
	}
	if !role.Valid() {
		return nil, apperror.NewValidation("role must be one of admin, coordinator, examiner", "role")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		ExaminerID:   input.ExaminerID,
		SchoolID:     input.SchoolID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if apperror.As(err) != nil {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Login authenticates by username and password, mints a token, and records
// a server-side session.
func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if apperror.IsType(err, apperror.TypeNotFound) {
			s.countLogin("unknown_user")
			return nil, apperror.NewUnauthorized(invalidCredentials)
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !s.hasher.Compare(user.PasswordHash, input.Password) {
		s.countLogin("bad_password")
		return nil, apperror.NewUnauthorized(invalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(IdentityOf(user))
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	sessionID, err := s.sessions.Create(ctx, Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	// Non-critical: a failed touch must not fail the login.
	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to update last login",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	s.countLogin("success")
	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, SessionID: sessionID, User: user}, nil
}

// Logout destroys the session record. Outstanding tokens stay valid until
// they expire; the gateway never consults the registry.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context, page int) ([]User, int, error) {
	page = min(max(page, 1), maxUsersPage)
	users, total, err := s.repo.List(ctx, (page-1)*usersPerPage, usersPerPage)
	if err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("listing users: %w", err))
	}
	return users, total, nil
}

// SetActive activates or deactivates an account. Accounts are never deleted.
// An administrator cannot deactivate their own account.
func (s *authService) SetActive(ctx context.Context, actor Identity, userID int64, active bool) (*User, error) {
	if !active && actor.UserID == userID {
		return nil, apperror.NewValidation("you cannot deactivate your own account", "is_active")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if apperror.As(err) != nil {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}
	if user.IsActive == active {
		return user, nil
	}

	if err := s.repo.SetActive(ctx, userID, active); err != nil {
		return nil, apperror.NewInternal(err)
	}
	user.IsActive = active

	action := audit.ActionUserDeactivated
	if active {
		action = audit.ActionUserActivated
	}
	s.record(ctx, &actor, action, user)
	return user, nil
}

func (s *authService) record(ctx context.Context, actor *Identity, action string, user *User) {
	if s.audit == nil {
		return
	}
	entry := &audit.Entry{
		Action:     action,
		EntityType: audit.EntityUser,
		EntityID:   user.ID,
		Username:   user.Username,
		Details:    map[string]any{"role": string(user.Role), "is_active": user.IsActive},
	}
	if actor != nil {
		id := actor.UserID
		entry.UserID = &id
		entry.Username = actor.Username
		entry.Details["target"] = user.Username
	}
	s.audit.Record(ctx, entry)
}

func (s *authService) countLogin(outcome string) {
	if s.logins != nil {
		s.logins.WithLabelValues(outcome).Inc()
	}
}
