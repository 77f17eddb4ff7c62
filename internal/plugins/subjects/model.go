// Package subjects manages the examination subjects. Subject codes are
// unique across the board.
package subjects

import "time"

// Subject is a row of the subjects table.
type Subject struct {
	ID          int64     `json:"id"`
	SubjectName string    `json:"subject_name"`
	SubjectCode string    `json:"subject_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubjectRequest is the body of POST /subjects.
type SubjectRequest struct {
	SubjectName string `json:"subject_name" validate:"required,max=150"`
	SubjectCode string `json:"subject_code" validate:"required,max=32"`
}
