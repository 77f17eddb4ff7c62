package students

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/database"
)

// StudentRepository defines the data access contract for students.
type StudentRepository interface {
	List(ctx context.Context) ([]Student, error)
	Create(ctx context.Context, s *Student) error
}

type studentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new repository backed by the given DB pool.
func NewStudentRepository(db *sql.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT st.id, st.student_name, st.roll_number, st.school_id, s.school_name, st.created_at
		 FROM students st
		 JOIN schools s ON s.id = st.school_id
		 ORDER BY st.roll_number`)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.StudentName, &s.RollNumber, &s.SchoolID, &s.SchoolName, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}
	return out, nil
}

func (r *studentRepository) Create(ctx context.Context, s *Student) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO students (student_name, roll_number, school_id) VALUES (?, ?, ?)`,
		s.StudentName, s.RollNumber, s.SchoolID,
	)
	if err != nil {
		switch {
		case database.IsDuplicateEntry(err):
			return apperror.NewDuplicateKey("roll number already exists")
		case database.IsMissingReference(err):
			return apperror.NewValidation("school does not exist", "school_id")
		}
		return fmt.Errorf("inserting student: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting student id: %w", err)
	}
	s.ID = id
	return nil
}
