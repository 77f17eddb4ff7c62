// Package audit records who changed what. Account changes and invigilation
// assignment writes are captured as Entry rows in the audit_log table and can
// be browsed by administrators. The plugin only observes; it never changes
// the records it describes.
package audit

import "time"

// Action strings follow the pattern "resource.verb".
const (
	ActionUserRegistered  = "user.registered"
	ActionUserProvisioned = "user.provisioned"
	ActionUserActivated   = "user.activated"
	ActionUserDeactivated = "user.deactivated"

	ActionAssignmentCreated = "invigilation.created"
	ActionAssignmentUpdated = "invigilation.updated"
	ActionAssignmentDeleted = "invigilation.deleted"

	ActionAnswerSheetEvaluated = "answer_sheet.evaluated"
)

// Entity types referenced by entries.
const (
	EntityUser        = "user"
	EntityAssignment  = "invigilation_assignment"
	EntityAnswerSheet = "answer_sheet"
)

// Entry is a single recorded action. UserID is nil for self-service
// registrations, which have no authenticated actor.
type Entry struct {
	ID         int64          `json:"id"`
	UserID     *int64         `json:"user_id,omitempty"`
	Username   string         `json:"username"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   int64          `json:"entity_id"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Filter narrows a listing to one entity type, optionally one entity.
type Filter struct {
	EntityType string
	EntityID   int64
}
