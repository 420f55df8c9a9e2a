package store

import (
	"fmt"
	"time"
)

// Outcome is one delivery attempt recorded against a run.
type Outcome struct {
	RunID  string
	URL    string
	Kind   string // application | email
	Status string // sent | skipped | failed
	Detail string
	At     time.Time
}

func (d *DB) RecordOutcome(o Outcome) error {
	at := o.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := d.Pool.Exec(
		`INSERT INTO outcomes (run_id, url, kind, status, detail, at) VALUES (?, ?, ?, ?, ?, ?);`,
		o.RunID, o.URL, o.Kind, o.Status, o.Detail, at.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// RunOutcomes returns every outcome recorded for a run, oldest first.
func (d *DB) RunOutcomes(runID string) ([]Outcome, error) {
	rows, err := d.Pool.Query(
		`SELECT run_id, url, kind, status, detail, at FROM outcomes WHERE run_id = ? ORDER BY id;`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("run outcomes: %w", err)
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var o Outcome
		var at string
		if err := rows.Scan(&o.RunID, &o.URL, &o.Kind, &o.Status, &o.Detail, &at); err != nil {
			return nil, err
		}
		o.At, _ = time.Parse(time.RFC3339, at)
		out = append(out, o)
	}
	return out, rows.Err()
}
