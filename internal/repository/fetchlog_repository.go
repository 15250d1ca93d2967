package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ndtduy/commodity-data-backend/internal/model"
)

// FetchLogRepository provides append access to the fetch_logs provenance
// table. Rows are written once per pipeline run and never updated.
type FetchLogRepository struct {
	db *sql.DB
}

// NewFetchLogRepository creates a new FetchLogRepository with the provided database connection.
func NewFetchLogRepository(db *sql.DB) *FetchLogRepository {
	return &FetchLogRepository{db: db}
}

// Insert appends one fetch outcome row.
func (r *FetchLogRepository) Insert(ctx context.Context, log model.FetchLog) error {
	query := `
        INSERT INTO fetch_logs (
            id, commodity_id, fetch_status, records_fetched, error_message, fetch_duration_ms
        )
        VALUES (?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		log.CommodityID,
		log.Status,
		log.RecordsFetched,
		log.ErrorMessage,
		log.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fetch log: %w", err)
	}

	return nil
}

// ListRecent retrieves the newest fetch logs, most recent first.
func (r *FetchLogRepository) ListRecent(limit int) ([]model.FetchLog, error) {
	query := `
        SELECT id, commodity_id, fetch_status, records_fetched, error_message, fetch_duration_ms, created_at
        FROM fetch_logs
        ORDER BY created_at DESC, id
        LIMIT ?
    `

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch_logs table: %w", err)
	}
	defer rows.Close()

	logs := []model.FetchLog{}

	for rows.Next() {
		var l model.FetchLog
		var duration sql.NullInt64
		var createdAt string

		err := rows.Scan(
			&l.ID,
			&l.CommodityID,
			&l.Status,
			&l.RecordsFetched,
			&l.ErrorMessage,
			&duration,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fetch_logs results: %w", err)
		}

		if duration.Valid {
			l.DurationMS = duration.Int64
		}
		if l.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		logs = append(logs, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetch_logs results: %w", err)
	}

	return logs, nil
}
