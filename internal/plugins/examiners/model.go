// Package examiners manages the examiners who evaluate answer sheets and
// invigilate. An examiner may be linked to a user account so the examiner
// role can see its own sheets and duties.
package examiners

import "time"

// Examiner is a row of v_examiner_details.
type Examiner struct {
	ID           int64     `json:"id"`
	ExaminerName string    `json:"examiner_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	SubjectID    *int64    `json:"subject_id"`
	SubjectName  string    `json:"subject_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExaminerRequest is the body of POST /examiners and PUT /examiners/:id.
type ExaminerRequest struct {
	ExaminerName string `json:"examiner_name" validate:"required,max=150"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Phone        string `json:"phone" validate:"max=32"`
	SubjectID    *int64 `json:"subject_id" validate:"omitempty,gt=0"`
}
