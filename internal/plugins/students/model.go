// Package students manages the candidates sitting the examinations. Roll
// numbers are unique across the board.
package students

import "time"

// Student is a row of the students table with its school's name.
type Student struct {
	ID          int64     `json:"id"`
	StudentName string    `json:"student_name"`
	RollNumber  string    `json:"roll_number"`
	SchoolID    int64     `json:"school_id"`
	SchoolName  string    `json:"school_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// StudentRequest is the body of POST /students.
type StudentRequest struct {
	StudentName string `json:"student_name" validate:"required,max=150"`
	RollNumber  string `json:"roll_number" validate:"required,max=32"`
	SchoolID    int64  `json:"school_id" validate:"required,gt=0"`
}
