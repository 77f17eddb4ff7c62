// Package invigilation manages invigilation duty assignments: which examiner
// supervises which school for which subject on which exam date and session.
// Every write passes the Validator, which checks the date and resolves each
// reference before the row reaches storage.
package invigilation

import "time"

// DateLayout is the ISO calendar date format used for exam dates.
const DateLayout = "2006-01-02"

// Assignment is one invigilation duty, with display names joined in from
// v_invigilation_details.
type Assignment struct {
	ID           int64     `json:"id"`
	ExaminerID   int64     `json:"examiner_id"`
	ExaminerName string    `json:"examiner_name,omitempty"`
	SchoolID     int64     `json:"school_id"`
	SchoolName   string    `json:"school_name,omitempty"`
	SubjectID    int64     `json:"subject_id"`
	SubjectName  string    `json:"subject_name,omitempty"`
	ExamDate     string    `json:"exam_date"`
	ExamSession  string    `json:"exam_session"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AssignmentRequest is the body of POST /invigilation and PUT /invigilation/:id.
// The date is checked by the Validator, not here, so a bad date reports the
// invalid_date kind.
type AssignmentRequest struct {
	ExaminerID  int64  `json:"examiner_id" validate:"required,gt=0"`
	SchoolID    int64  `json:"school_id" validate:"required,gt=0"`
	SubjectID   int64  `json:"subject_id" validate:"required,gt=0"`
	ExamDate    string `json:"exam_date" validate:"required"`
	ExamSession string `json:"exam_session" validate:"required,max=32"`
}

// AssignmentInput is passed from handler to service.
type AssignmentInput struct {
	ExaminerID  int64
	SchoolID    int64
	SubjectID   int64
	ExamDate    string
	ExamSession string
}
