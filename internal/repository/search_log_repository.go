// Package repository persists the small amount of state this service
// keeps: per-sender search history in MySQL and per-sender city memory in
// Redis.  Event data itself is never stored.
package repository

import (
	"context"
	"database/sql"
)

// SearchLogEntry is one remembered resolver invocation.
type SearchLogEntry struct {
	ID          uint64 `json:"id"`
	Sender      string `json:"sender"`
	Query       string `json:"query"`
	Strategy    string `json:"strategy"`
	ResultCount int    `json:"result_count"`
	CreatedAt   string `json:"created_at"`
}

type SearchLogRepo struct {
	db *sql.DB
}

// NewSearchLogRepo returns nil when no database is configured; callers
// treat a nil repo as "history disabled".
func NewSearchLogRepo(db *sql.DB) *SearchLogRepo {
	if db == nil {
		return nil
	}
	return &SearchLogRepo{db: db}
}

// Insert records one resolver invocation.  Failures are the caller's to
// log and ignore; history must never break a search.
func (r *SearchLogRepo) Insert(ctx context.Context, sender, query, strategy string, resultCount int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO search_log (sender, query, strategy, result_count) VALUES (?, ?, ?, ?)`,
		sender, query, strategy, resultCount)
	return err
}

// Recent returns the sender's latest searches, newest first.
func (r *SearchLogRepo) Recent(ctx context.Context, sender string, limit int) ([]SearchLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sender, query, strategy, result_count,
			DATE_FORMAT(created_at, '%Y-%m-%d %T') AS created_at
		FROM search_log
		WHERE sender = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, sender, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SearchLogEntry, 0, limit)
	for rows.Next() {
		var e SearchLogEntry
		if err := rows.Scan(&e.ID, &e.Sender, &e.Query, &e.Strategy, &e.ResultCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
