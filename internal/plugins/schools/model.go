// Package schools manages the schools that sit board examinations. Schools
// are reference data: students belong to one, and invigilation duties are
// assigned at one.
package schools

import "time"

// School is a row of the schools table.
type School struct {
	ID         int64     `json:"id"`
	SchoolName string    `json:"school_name"`
	Location   string    `json:"location"`
	CreatedAt  time.Time `json:"created_at"`
}

// SchoolRequest is the body of POST /schools and PUT /schools/:id.
type SchoolRequest struct {
	SchoolName string `json:"school_name" validate:"required,max=200"`
	Location   string `json:"location" validate:"max=200"`
}
