// Package answersheets tracks answer sheets through evaluation. A sheet is
// created pending for one student and subject, optionally allotted to an
// examiner, and becomes evaluated once marks are recorded. Examiners only
// ever see and mark the sheets allotted to them.
package answersheets

import "time"

// Status is the evaluation state of a sheet.
type Status string

const (
	StatusPending   Status = "pending"
	StatusEvaluated Status = "evaluated"
)

// DefaultMaxMarks applies when a sheet is created without an explicit maximum.
const DefaultMaxMarks = 100.0

// MarksLimit is the largest value the DECIMAL(6,2) marks columns hold.
const MarksLimit = 9999.99

// AnswerSheet is a row of v_answer_sheet_details.
type AnswerSheet struct {
	ID            int64      `json:"id"`
	StudentID     int64      `json:"student_id"`
	StudentName   string     `json:"student_name,omitempty"`
	RollNumber    string     `json:"roll_number,omitempty"`
	SubjectID     int64      `json:"subject_id"`
	SubjectName   string     `json:"subject_name,omitempty"`
	ExaminerID    *int64     `json:"examiner_id"`
	ExaminerName  string     `json:"examiner_name,omitempty"`
	MarksObtained *float64   `json:"marks_obtained"`
	MaxMarks      float64    `json:"max_marks"`
	Status        Status     `json:"status"`
	EvaluatedAt   *time.Time `json:"evaluated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateRequest is the body of POST /answer-sheets.
type CreateRequest struct {
	StudentID  int64    `json:"student_id" validate:"required,gt=0"`
	SubjectID  int64    `json:"subject_id" validate:"required,gt=0"`
	ExaminerID *int64   `json:"examiner_id" validate:"omitempty,gt=0"`
	MaxMarks   *float64 `json:"max_marks" validate:"omitempty,gt=0,lte=9999.99"`
}

// EvaluationRequest is the body of PUT /answer-sheets/:id/evaluation.
type EvaluationRequest struct {
	MarksObtained *float64 `json:"marks_obtained" validate:"required,gte=0"`
}
