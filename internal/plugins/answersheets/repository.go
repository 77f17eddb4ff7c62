package answersheets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/database"
)

// AnswerSheetRepository defines the data access contract for answer sheets.
type AnswerSheetRepository interface {
	// List returns sheets newest first. A non-nil examinerID narrows the
	// list to that examiner's sheets.
	List(ctx context.Context, examinerID *int64) ([]AnswerSheet, error)
	FindByID(ctx context.Context, id int64) (*AnswerSheet, error)
	Create(ctx context.Context, s *AnswerSheet) error

	// Evaluate records marks and marks the sheet evaluated.
	Evaluate(ctx context.Context, id int64, marks float64) error
}

type answerSheetRepository struct {
	db *sql.DB
}

// NewAnswerSheetRepository creates a new repository backed by the given DB pool.
func NewAnswerSheetRepository(db *sql.DB) AnswerSheetRepository {
	return &answerSheetRepository{db: db}
}

const sheetColumns = `id, student_id, student_name, roll_number, subject_id, subject_name,
	examiner_id, examiner_name, marks_obtained, max_marks, status, evaluated_at, created_at`

func (r *answerSheetRepository) List(ctx context.Context, examinerID *int64) ([]AnswerSheet, error) {
	query := `SELECT ` + sheetColumns + ` FROM v_answer_sheet_details`
	var args []any
	if examinerID != nil {
		query += ` WHERE examiner_id = ?`
		args = append(args, *examinerID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing answer sheets: %w", err)
	}
	defer rows.Close()

	var out []AnswerSheet
	for rows.Next() {
		s, err := scanSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning answer sheet: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating answer sheets: %w", err)
	}
	return out, nil
}

func (r *answerSheetRepository) FindByID(ctx context.Context, id int64) (*AnswerSheet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sheetColumns+` FROM v_answer_sheet_details WHERE id = ?`, id)
	s, err := scanSheet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("answer sheet not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying answer sheet: %w", err)
	}
	return s, nil
}

func (r *answerSheetRepository) Create(ctx context.Context, s *AnswerSheet) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_sheets (student_id, subject_id, examiner_id, max_marks, status)
		 VALUES (?, ?, ?, ?, ?)`,
		s.StudentID, s.SubjectID, s.ExaminerID, s.MaxMarks, s.Status,
	)
	if err != nil {
		switch {
		case database.IsDuplicateEntry(err):
			return apperror.NewDuplicateKey("student already has an answer sheet for this subject")
		case database.IsMissingReference(err):
			return apperror.NewValidation("referenced student, subject or examiner does not exist",
				"student_id", "subject_id", "examiner_id")
		case database.IsOutOfRange(err):
			return apperror.NewValidation("max_marks is out of range", "max_marks")
		}
		return fmt.Errorf("inserting answer sheet: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting answer sheet id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *answerSheetRepository) Evaluate(ctx context.Context, id int64, marks float64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE answer_sheets
		 SET marks_obtained = ?, status = ?, evaluated_at = UTC_TIMESTAMP()
		 WHERE id = ?`,
		marks, StatusEvaluated, id,
	); err != nil {
		if database.IsOutOfRange(err) {
			return apperror.NewValidation("marks_obtained is out of range", "marks_obtained")
		}
		return fmt.Errorf("evaluating answer sheet: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSheet(row rowScanner) (*AnswerSheet, error) {
	var s AnswerSheet
	var examinerID sql.NullInt64
	var examinerName sql.NullString
	var marks sql.NullFloat64
	var evaluatedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.StudentID, &s.StudentName, &s.RollNumber, &s.SubjectID, &s.SubjectName,
		&examinerID, &examinerName, &marks, &s.MaxMarks, &s.Status, &evaluatedAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	if examinerID.Valid {
		s.ExaminerID = &examinerID.Int64
	}
	s.ExaminerName = examinerName.String
	if marks.Valid {
		s.MarksObtained = &marks.Float64
	}
	if evaluatedAt.Valid {
		s.EvaluatedAt = &evaluatedAt.Time
	}
	return &s, nil
}
