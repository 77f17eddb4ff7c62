package examiners

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/database"
)

// ExaminerRepository defines the data access contract for examiners.
type ExaminerRepository interface {
	// List is ordered by name then id, so repeated reads are identical.
	List(ctx context.Context) ([]Examiner, error)
	FindByID(ctx context.Context, id int64) (*Examiner, error)
	Create(ctx context.Context, e *Examiner) error
	Update(ctx context.Context, e *Examiner) error
	Delete(ctx context.Context, id int64) error
}

type examinerRepository struct {
	db *sql.DB
}

// NewExaminerRepository creates a new repository backed by the given DB pool.
func NewExaminerRepository(db *sql.DB) ExaminerRepository {
	return &examinerRepository{db: db}
}

const examinerColumns = `id, examiner_name, email, phone, subject_id, subject_name, created_at`

func (r *examinerRepository) List(ctx context.Context) ([]Examiner, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+examinerColumns+` FROM v_examiner_details ORDER BY examiner_name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing examiners: %w", err)
	}
	defer rows.Close()

	var out []Examiner
	for rows.Next() {
		e, err := scanExaminer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning examiner: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating examiners: %w", err)
	}
	return out, nil
}

func (r *examinerRepository) FindByID(ctx context.Context, id int64) (*Examiner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+examinerColumns+` FROM v_examiner_details WHERE id = ?`, id)
	e, err := scanExaminer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("examiner not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying examiner: %w", err)
	}
	return e, nil
}

func (r *examinerRepository) Create(ctx context.Context, e *Examiner) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO examiners (examiner_name, email, phone, subject_id) VALUES (?, ?, ?, ?)`,
		e.ExaminerName, e.Email, e.Phone, e.SubjectID,
	)
	if err != nil {
		return writeError("inserting examiner", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting examiner id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *examinerRepository) Update(ctx context.Context, e *Examiner) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE examiners SET examiner_name = ?, email = ?, phone = ?, subject_id = ? WHERE id = ?`,
		e.ExaminerName, e.Email, e.Phone, e.SubjectID, e.ID,
	); err != nil {
		return writeError("updating examiner", err)
	}
	return nil
}

func (r *examinerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM examiners WHERE id = ?`, id)
	if err != nil {
		if database.IsReferenced(err) {
			return apperror.NewBadRequest("examiner still has invigilation assignments")
		}
		return fmt.Errorf("deleting examiner: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperror.NewNotFound("examiner not found")
	}
	return nil
}

func writeError(op string, err error) error {
	switch {
	case database.IsDuplicateEntry(err):
		return apperror.NewDuplicateKey("examiner email already exists")
	case database.IsMissingReference(err):
		return apperror.NewValidation("subject does not exist", "subject_id")
	}
	return fmt.Errorf("%s: %w", op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExaminer(row rowScanner) (*Examiner, error) {
	var e Examiner
	var subjectID sql.NullInt64
	var subjectName sql.NullString
	if err := row.Scan(&e.ID, &e.ExaminerName, &e.Email, &e.Phone, &subjectID, &subjectName, &e.CreatedAt); err != nil {
		return nil, err
	}
	if subjectID.Valid {
		e.SubjectID = &subjectID.Int64
	}
	e.SubjectName = subjectName.String
	return &e, nil
}
