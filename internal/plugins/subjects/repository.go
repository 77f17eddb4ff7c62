package subjects

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/database"
)

// SubjectRepository defines the data access contract for subjects.
type SubjectRepository interface {
	List(ctx context.Context) ([]Subject, error)
	Create(ctx context.Context, s *Subject) error
}

type subjectRepository struct {
	db *sql.DB
}

// NewSubjectRepository creates a new repository backed by the given DB pool.
func NewSubjectRepository(db *sql.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) List(ctx context.Context) ([]Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subject_name, subject_code, created_at FROM subjects ORDER BY subject_name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var out []Subject
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.SubjectName, &s.SubjectCode, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return out, nil
}

func (r *subjectRepository) Create(ctx context.Context, s *Subject) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO subjects (subject_name, subject_code) VALUES (?, ?)`, s.SubjectName, s.SubjectCode)
	if err != nil {
		if database.IsDuplicateEntry(err) {
			return apperror.NewDuplicateKey("subject code already exists")
		}
		return fmt.Errorf("inserting subject: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting subject id: %w", err)
	}
	s.ID = id
	return nil
}
