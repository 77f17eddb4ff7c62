package invigilation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/database"
)

// AssignmentRepository defines the data access contract for assignments.
type AssignmentRepository interface {
	// List returns every assignment, most recent exam date first. A non-nil
	// examinerID narrows the list to that examiner's duties.
	List(ctx context.Context, examinerID *int64) ([]Assignment, error)
	FindByID(ctx context.Context, id int64) (*Assignment, error)
	Create(ctx context.Context, a *Assignment) error
	Update(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id int64) error
}

type assignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new repository backed by the given DB pool.
func NewAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

const detailColumns = `id, examiner_id, examiner_name, school_id, school_name, subject_id,
	subject_name, exam_date, exam_session, created_at, updated_at`

func (r *assignmentRepository) List(ctx context.Context, examinerID *int64) ([]Assignment, error) {
	query := `SELECT ` + detailColumns + ` FROM v_invigilation_details`
	var args []any
	if examinerID != nil {
		query += ` WHERE examiner_id = ?`
		args = append(args, *examinerID)
	}
	query += ` ORDER BY exam_date DESC, exam_session, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id int64) (*Assignment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+detailColumns+` FROM v_invigilation_details WHERE id = ?`, id)
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("invigilation assignment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying assignment: %w", err)
	}
	return a, nil
}

func (r *assignmentRepository) Create(ctx context.Context, a *Assignment) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO invigilation_assignments (examiner_id, school_id, subject_id, exam_date, exam_session)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ExaminerID, a.SchoolID, a.SubjectID, a.ExamDate, a.ExamSession,
	)
	if err != nil {
		if database.IsMissingReference(err) {
			return missingReference()
		}
		return fmt.Errorf("inserting assignment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting assignment id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *assignmentRepository) Update(ctx context.Context, a *Assignment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invigilation_assignments
		 SET examiner_id = ?, school_id = ?, subject_id = ?, exam_date = ?, exam_session = ?
		 WHERE id = ?`,
		a.ExaminerID, a.SchoolID, a.SubjectID, a.ExamDate, a.ExamSession, a.ID,
	)
	if err != nil {
		if database.IsMissingReference(err) {
			return missingReference()
		}
		return fmt.Errorf("updating assignment: %w", err)
	}
	// MariaDB reports zero affected rows for an unchanged row, so only a
	// missing row is treated as not found.
	if n, _ := result.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM invigilation_assignments WHERE id = ?)`, a.ID).Scan(&exists); err != nil {
			return fmt.Errorf("checking assignment: %w", err)
		}
		if !exists {
			return apperror.NewNotFound("invigilation assignment not found")
		}
	}
	return nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invigilation_assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperror.NewNotFound("invigilation assignment not found")
	}
	return nil
}

// missingReference covers a referenced row deleted between validation and
// the write.
func missingReference() *apperror.AppError {
	return apperror.NewValidation("referenced examiner, school or subject does not exist",
		"examiner_id", "school_id", "subject_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (*Assignment, error) {
	var a Assignment
	var examDate time.Time
	if err := row.Scan(&a.ID, &a.ExaminerID, &a.ExaminerName, &a.SchoolID, &a.SchoolName,
		&a.SubjectID, &a.SubjectName, &examDate, &a.ExamSession, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ExamDate = examDate.Format(DateLayout)
	return &a, nil
}

// --- Reference lookups ---

type referenceLookup struct {
	db *sql.DB
}

// NewReferenceLookup answers existence queries against the reference tables.
func NewReferenceLookup(db *sql.DB) ReferenceLookup {
	return &referenceLookup{db: db}
}

func (l *referenceLookup) ExaminerExists(ctx context.Context, id int64) (bool, error) {
	return l.exists(ctx, `SELECT EXISTS(SELECT 1 FROM examiners WHERE id = ?)`, id)
}

func (l *referenceLookup) SchoolExists(ctx context.Context, id int64) (bool, error) {
	return l.exists(ctx, `SELECT EXISTS(SELECT 1 FROM schools WHERE id = ?)`, id)
}

func (l *referenceLookup) SubjectExists(ctx context.Context, id int64) (bool, error) {
	return l.exists(ctx, `SELECT EXISTS(SELECT 1 FROM subjects WHERE id = ?)`, id)
}

func (l *referenceLookup) exists(ctx context.Context, query string, id int64) (bool, error) {
	var ok bool
	if err := l.db.QueryRowContext(ctx, query, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
