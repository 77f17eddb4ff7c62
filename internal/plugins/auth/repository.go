package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/database"
)

// UserRepository is the credential store. All SQL lives in the concrete
// implementation.
type UserRepository interface {
	// Create inserts user and sets its ID. A taken username or email yields
	// a DuplicateIdentity error; the unique indexes decide races.
	Create(ctx context.Context, user *User) error

	// FindByUsername and FindByEmail only return active users.
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns a user regardless of the active flag.
	FindByID(ctx context.Context, id int64) (*User, error)

	TouchLastLogin(ctx context.Context, id int64) error

	// Admin operations.
	List(ctx context.Context, offset, limit int) ([]User, int, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, examiner_id, school_id,
	is_active, created_at, last_login_at`

func (r *userRepository) Create(ctx context.Context, user *User) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, examiner_id, school_id, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, TRUE)`,
		user.Username, user.Email, user.PasswordHash, user.Role, user.ExaminerID, user.SchoolID,
	)
	if err != nil {
		switch {
		case database.IsDuplicateEntry(err):
			return duplicateIdentity(err)
		case database.IsMissingReference(err):
			return apperror.NewValidation("referenced examiner or school does not exist", "examiner_id", "school_id")
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting user id: %w", err)
	}
	user.ID = id
	user.IsActive = true
	return nil
}

// duplicateIdentity names the clashing column from the index in the
// driver's message.
func duplicateIdentity(err error) *apperror.AppError {
	if strings.Contains(err.Error(), "uq_users_email") {
		return apperror.NewDuplicateIdentity("email already registered")
	}
	return apperror.NewDuplicateIdentity("username already taken")
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `WHERE username = ? AND is_active = TRUE`, username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `WHERE email = ? AND is_active = TRUE`, email)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, `WHERE id = ?`, id)
}

func (r *userRepository) findOne(ctx context.Context, where string, arg any) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users `+where, arg)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = UTC_TIMESTAMP() WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating users: %w", err)
	}
	return users, total, nil
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = ? WHERE id = ?`, active, id); err != nil {
		return fmt.Errorf("updating user status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	var examinerID, schoolID sql.NullInt64
	var lastLogin sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&examinerID, &schoolID, &u.IsActive, &u.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	if examinerID.Valid {
		u.ExaminerID = &examinerID.Int64
	}
	if schoolID.Valid {
		u.SchoolID = &schoolID.Int64
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}
