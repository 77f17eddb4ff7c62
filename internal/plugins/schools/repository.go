package schools

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/database"
)

// SchoolRepository defines the data access contract for schools.
type SchoolRepository interface {
	List(ctx context.Context) ([]School, error)
	FindByID(ctx context.Context, id int64) (*School, error)
	Create(ctx context.Context, s *School) error
	Update(ctx context.Context, s *School) error
	Delete(ctx context.Context, id int64) error
}

type schoolRepository struct {
	db *sql.DB
}

// NewSchoolRepository creates a new repository backed by the given DB pool.
func NewSchoolRepository(db *sql.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) List(ctx context.Context) ([]School, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, school_name, location, created_at FROM schools ORDER BY school_name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing schools: %w", err)
	}
	defer rows.Close()

	var out []School
	for rows.Next() {
		var s School
		if err := rows.Scan(&s.ID, &s.SchoolName, &s.Location, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning school: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schools: %w", err)
	}
	return out, nil
}

func (r *schoolRepository) FindByID(ctx context.Context, id int64) (*School, error) {
	var s School
	err := r.db.QueryRowContext(ctx,
		`SELECT id, school_name, location, created_at FROM schools WHERE id = ?`, id,
	).Scan(&s.ID, &s.SchoolName, &s.Location, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("school not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying school: %w", err)
	}
	return &s, nil
}

func (r *schoolRepository) Create(ctx context.Context, s *School) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO schools (school_name, location) VALUES (?, ?)`, s.SchoolName, s.Location)
	if err != nil {
		return fmt.Errorf("inserting school: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting school id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *schoolRepository) Update(ctx context.Context, s *School) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE schools SET school_name = ?, location = ? WHERE id = ?`,
		s.SchoolName, s.Location, s.ID,
	); err != nil {
		return fmt.Errorf("updating school: %w", err)
	}
	return nil
}

func (r *schoolRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schools WHERE id = ?`, id)
	if err != nil {
		if database.IsReferenced(err) {
			return apperror.NewBadRequest("school still has students or invigilation assignments")
		}
		return fmt.Errorf("deleting school: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperror.NewNotFound("school not found")
	}
	return nil
}
