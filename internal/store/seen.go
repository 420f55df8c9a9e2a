package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MarkSeen records a URL as handled. Repeated marks are harmless.
func (d *DB) MarkSeen(url string) error {
	_, err := d.Pool.Exec(
		`INSERT OR IGNORE INTO seen_urls (url, first_seen) VALUES (?, ?);`,
		url, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

// Seen reports whether a URL was handled in any earlier run.
func (d *DB) Seen(url string) (bool, error) {
	var one int
	err := d.Pool.QueryRow(`SELECT 1 FROM seen_urls WHERE url = ? LIMIT 1;`, url).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query seen: %w", err)
	}
	return true, nil
}

// LoadSeen returns the full set of previously handled URLs.
func (d *DB) LoadSeen() (map[string]bool, error) {
	rows, err := d.Pool.Query(`SELECT url FROM seen_urls;`)
	if err != nil {
		return nil, fmt.Errorf("load seen: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		seen[url] = true
	}
	return seen, rows.Err()
}
