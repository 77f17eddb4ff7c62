// Package auth handles identity for examboard: the credential store,
// password hashing, bearer token issuing and verification, the server-side
// session registry used for logout, the request authentication gateway, and
// the role-based authorization policy.
//
// This is a CORE plugin -- every other plugin's routes pass through it.
package auth

import (
	"time"
)

// Role is one of the fixed RBAC roles. There is no hierarchy between roles.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleExaminer    Role = "examiner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleExaminer:
		return true
	}
	return false
}

// User is an account in the credential store.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose in JSON responses.
	Role         Role       `json:"role"`
	ExaminerID   *int64     `json:"examiner_id"`
	SchoolID     *int64     `json:"school_id"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Identity is the caller resolved from a verified token. It is the only
// identity later stages trust.
type Identity struct {
	UserID     int64  `json:"id"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	ExaminerID *int64 `json:"examiner_id,omitempty"`
	SchoolID   *int64 `json:"school_id,omitempty"`
}

// IdentityOf builds the token identity for a user.
func IdentityOf(u *User) Identity {
	return Identity{
		UserID:     u.ID,
		Username:   u.Username,
		Role:       u.Role,
		ExaminerID: u.ExaminerID,
		SchoolID:   u.SchoolID,
	}
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest is the self-service registration body.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=64"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Role       string `json:"role" validate:"omitempty,oneof=admin coordinator examiner"`
	ExaminerID *int64 `json:"examiner_id" validate:"omitempty,gt=0"`
	SchoolID   *int64 `json:"school_id" validate:"omitempty,gt=0"`
}

// ProvisionRequest is the admin account-creation body. Role is mandatory.
type ProvisionRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=64"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Role       string `json:"role" validate:"required,oneof=admin coordinator examiner"`
	ExaminerID *int64 `json:"examiner_id" validate:"omitempty,gt=0"`
	SchoolID   *int64 `json:"school_id" validate:"omitempty,gt=0"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StatusRequest activates or deactivates an account.
type StatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the input for creating an account.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	Role       Role
	ExaminerID *int64
	SchoolID   *int64
}

// LoginInput is the input for authenticating a user.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is what a successful login hands back to the handler.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	SessionID string
	User      *User
}

// --- Session ---

// Session is the server-side record of a login, stored in Redis. It only
// signals explicit logout and is never consulted to authorize a request.
type Session struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
