package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/model"
)

// CommodityRepository provides data access methods for the commodities table.
type CommodityRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewCommodityRepository creates a new CommodityRepository with the provided database connection.
func NewCommodityRepository(db *sql.DB) *CommodityRepository {
	return &CommodityRepository{db: db}
}

func (r *CommodityRepository) WithTx(tx *sql.Tx) *CommodityRepository {
	return &CommodityRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CommodityRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetByCode retrieves a commodity by its code. Lookups are case-insensitive;
// codes are stored upper-cased.
func (r *CommodityRepository) GetByCode(code string) (model.Commodity, error) {
	query := `
        SELECT id, code, name, unit
        FROM commodities
        WHERE code = ?
    `

	var c model.Commodity

	err := r.getQuerier().QueryRow(query, strings.ToUpper(code)).Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.Unit,
	)
	if err == sql.ErrNoRows {
		return model.Commodity{}, apperrors.ErrCommodityNotFound
	}
	if err != nil {
		return model.Commodity{}, fmt.Errorf("failed to query commodities table: %w", err)
	}

	return c, nil
}

// GetAll retrieves all commodities ordered by code.
func (r *CommodityRepository) GetAll() ([]model.Commodity, error) {
	query := `
        SELECT id, code, name, unit
        FROM commodities
        ORDER BY code
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query commodities table: %w", err)
	}
	defer rows.Close()

	commodities := []model.Commodity{}

	for rows.Next() {
		var c model.Commodity

		err := rows.Scan(
			&c.ID,
			&c.Code,
			&c.Name,
			&c.Unit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commodities table results: %w", err)
		}
		commodities = append(commodities, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commodities table: %w", err)
	}

	return commodities, nil
}
