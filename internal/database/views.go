package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Execer is the subset of *sql.DB needed to create views.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// View is a named derived read view.
type View struct {
	Name  string
	Query string
}

// Views joins display names onto the raw reference ids. CREATE OR REPLACE
// keeps the bootstrap idempotent.
var Views = []View{
	{
		Name: "v_invigilation_details",
		Query: `CREATE OR REPLACE VIEW v_invigilation_details AS
			SELECT ia.id, ia.examiner_id, e.examiner_name, ia.school_id, s.school_name,
			       ia.subject_id, sub.subject_name, ia.exam_date, ia.exam_session,
			       ia.created_at, ia.updated_at
			FROM invigilation_assignments ia
			JOIN examiners e ON e.id = ia.examiner_id
			JOIN schools s ON s.id = ia.school_id
			JOIN subjects sub ON sub.id = ia.subject_id`,
	},
	{
		Name: "v_answer_sheet_details",
		Query: `CREATE OR REPLACE VIEW v_answer_sheet_details AS
			SELECT a.id, a.student_id, st.student_name, st.roll_number,
			       a.subject_id, sub.subject_name, a.examiner_id, e.examiner_name,
			       a.marks_obtained, a.max_marks, a.status, a.evaluated_at, a.created_at
			FROM answer_sheets a
			JOIN students st ON st.id = a.student_id
			JOIN subjects sub ON sub.id = a.subject_id
			LEFT JOIN examiners e ON e.id = a.examiner_id`,
	},
	{
		Name: "v_examiner_details",
		Query: `CREATE OR REPLACE VIEW v_examiner_details AS
			SELECT e.id, e.examiner_name, e.email, e.phone, e.subject_id,
			       sub.subject_name, e.created_at
			FROM examiners e
			LEFT JOIN subjects sub ON sub.id = e.subject_id`,
	},
}

// View bootstrap retry policy: a fixed number of attempts with a fixed pause.
const (
	ViewAttempts = 3
	ViewBackoff  = 2 * time.Second
)

// EnsureViews creates every derived view, retrying the whole set up to
// attempts times with a fixed backoff between tries.
func EnsureViews(ctx context.Context, db Execer, attempts int, backoff time.Duration) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = createViews(ctx, db)
		if lastErr == nil {
			slog.Info("views ready", slog.Int("count", len(Views)))
			return nil
		}
		if attempt == attempts {
			break
		}

		slog.Warn("creating views failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Any("error", lastErr),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("creating views after %d attempts: %w", attempts, lastErr)
}

func createViews(ctx context.Context, db Execer) error {
	for _, v := range Views {
		if _, err := db.ExecContext(ctx, v.Query); err != nil {
			return fmt.Errorf("creating view %s: %w", v.Name, err)
		}
	}
	return nil
}
