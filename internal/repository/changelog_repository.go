package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/ndtduy/commodity-data-backend/internal/model"
)

// ChangeLogRepository provides data access methods for the change_logs table.
type ChangeLogRepository struct {
	db *sql.DB
}

// NewChangeLogRepository creates a new ChangeLogRepository with the provided database connection.
func NewChangeLogRepository(db *sql.DB) *ChangeLogRepository {
	return &ChangeLogRepository{db: db}
}

// Insert appends a change log entry. Details are stored as a JSON array of
// strings; a nil slice is stored as an empty array.
func (r *ChangeLogRepository) Insert(ctx context.Context, entry model.ChangeLogEntry) error {
	details := entry.Details
	if details == nil {
		details = []string{}
	}

	encoded, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode change log details: %w", err)
	}

	query := `
        INSERT INTO change_logs (id, summary, details)
        VALUES (?, ?, ?)
    `

	_, err = r.db.ExecContext(ctx, query,
		uuid.New().String(),
		entry.Summary,
		string(encoded),
	)
	if err != nil {
		return fmt.Errorf("failed to insert change log: %w", err)
	}

	return nil
}

// ListRecent retrieves the newest change log entries, most recent first.
func (r *ChangeLogRepository) ListRecent(limit int) ([]model.ChangeLogEntry, error) {
	query := `
        SELECT id, summary, details, created_at
        FROM change_logs
        ORDER BY created_at DESC, id
        LIMIT ?
    `

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query change_logs table: %w", err)
	}
	defer rows.Close()

	entries := []model.ChangeLogEntry{}

	for rows.Next() {
		var e model.ChangeLogEntry
		var details sql.NullString
		var createdAt string

		err := rows.Scan(
			&e.ID,
			&e.Summary,
			&details,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change_logs results: %w", err)
		}

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				return nil, fmt.Errorf("failed to decode change log details: %w", err)
			}
		}
		if e.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change_logs results: %w", err)
	}

	return entries, nil
}
