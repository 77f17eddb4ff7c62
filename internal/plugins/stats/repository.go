package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StatsRepository runs the aggregate queries.
type StatsRepository interface {
	// Count returns the row count of one of the reference tables.
	Count(ctx context.Context, table string) (int, error)
	AnswerSheetsByStatus(ctx context.Context) (map[string]int, error)
	AssignmentsByDate(ctx context.Context) ([]DateCount, error)
}

// countQueries whitelists the tables Count accepts.
var countQueries = map[string]string{
	"schools":   `SELECT COUNT(*) FROM schools`,
	"subjects":  `SELECT COUNT(*) FROM subjects`,
	"examiners": `SELECT COUNT(*) FROM examiners`,
	"students":  `SELECT COUNT(*) FROM students`,
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new repository backed by the given DB pool.
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Count(ctx context.Context, table string) (int, error) {
	query, ok := countQueries[table]
	if !ok {
		return 0, fmt.Errorf("counting %s: unknown table", table)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

func (r *statsRepository) AnswerSheetsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM answer_sheets GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting answer sheets: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning answer sheet count: %w", err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating answer sheet counts: %w", err)
	}
	return out, nil
}

func (r *statsRepository) AssignmentsByDate(ctx context.Context) ([]DateCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT exam_date, COUNT(*) FROM invigilation_assignments GROUP BY exam_date ORDER BY exam_date`)
	if err != nil {
		return nil, fmt.Errorf("counting assignments: %w", err)
	}
	defer rows.Close()

	var out []DateCount
	for rows.Next() {
		var date time.Time
		var dc DateCount
		if err := rows.Scan(&date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scanning assignment count: %w", err)
		}
		dc.ExamDate = date.Format("2006-01-02")
		out = append(out, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignment counts: %w", err)
	}
	return out, nil
}
