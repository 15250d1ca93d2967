package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ndtduy/commodity-data-backend/internal/model"
)

// PriceRepository provides data access methods for the commodity_prices
// table and the v_latest_prices view.
type PriceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) WithTx(tx *sql.Tx) *PriceRepository {
	return &PriceRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PriceRepository) getQuerier() interface {
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

// UpsertPrices writes one row per price, inserting new (commodity, date)
// pairs and fully replacing the value and bid/offer fields of existing
// ones. The update arm advances updated_at and leaves created_at alone.
//
// The batch runs in a single transaction: either every row is applied and
// the total number of rows reported as inserted or updated is returned, or
// the transaction rolls back and zero is returned with the error.
func (r *PriceRepository) UpsertPrices(ctx context.Context, prices []model.CommodityPrice) (int64, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin price upsert transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
        INSERT INTO commodity_prices (
            id, commodity_id, price_date, price_value, cash_bid, cash_offer,
            three_month_bid, three_month_offer, source
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (commodity_id, price_date) DO UPDATE SET
            price_value = excluded.price_value,
            cash_bid = excluded.cash_bid,
            cash_offer = excluded.cash_offer,
            three_month_bid = excluded.three_month_bid,
            three_month_offer = excluded.three_month_offer,
            source = excluded.source,
            updated_at = CURRENT_TIMESTAMP
    `

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare price upsert: %w", err)
	}
	defer stmt.Close()

	var saved int64
	for _, p := range prices {
		result, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			p.CommodityID,
			p.PriceDate,
			p.PriceValue,
			p.CashBid,
			p.CashOffer,
			p.ThreeMonthBid,
			p.ThreeMonthOffer,
			p.Source,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert price for %s: %w", p.PriceDate, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		saved += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit price upsert: %w", err)
	}

	return saved, nil
}

// GetPricesSince retrieves all stored prices dated on or after startDate
// (ISO YYYY-MM-DD), joined with their commodity and ordered by date then
// code. This ordering is what the chart aggregation relies on.
func (r *PriceRepository) GetPricesSince(startDate string) ([]model.PriceRow, error) {
	query := `
        SELECT c.code, c.name, cp.price_date, cp.price_value
        FROM commodity_prices cp
        JOIN commodities c ON c.id = cp.commodity_id
        WHERE cp.price_date >= ?
        ORDER BY cp.price_date, c.code
    `

	rows, err := r.db.Query(query, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query commodity_prices table: %w", err)
	}
	defer rows.Close()

	prices := []model.PriceRow{}

	for rows.Next() {
		var p model.PriceRow

		err := rows.Scan(
			&p.Code,
			&p.Name,
			&p.PriceDate,
			&p.PriceValue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commodity_prices results: %w", err)
		}
		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commodity_prices results: %w", err)
	}

	return prices, nil
}

// GetLatestPrices retrieves the newest stored price per commodity from the
// v_latest_prices view, ordered by code.
func (r *PriceRepository) GetLatestPrices() ([]model.LatestPrice, error) {
	query := `
        SELECT code, name, unit, price_date, price_value, cash_bid,
               cash_offer, three_month_bid, three_month_offer, source, updated_at
        FROM v_latest_prices
        ORDER BY code
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query v_latest_prices view: %w", err)
	}
	defer rows.Close()

	latest := []model.LatestPrice{}

	for rows.Next() {
		var lp model.LatestPrice
		var updatedAt string

		err := rows.Scan(
			&lp.Code,
			&lp.Name,
			&lp.Unit,
			&lp.PriceDate,
			&lp.PriceValue,
			&lp.CashBid,
			&lp.CashOffer,
			&lp.ThreeMonthBid,
			&lp.ThreeMonthOffer,
			&lp.Source,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan v_latest_prices results: %w", err)
		}

		lp.UpdatedAt, err = ParseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}

		latest = append(latest, lp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating v_latest_prices results: %w", err)
	}

	return latest, nil
}

// GetSummary aggregates stored price coverage per commodity: row count plus
// earliest and latest price date, ordered by code. Commodities without any
// stored prices are not included.
func (r *PriceRepository) GetSummary() ([]model.CommoditySummary, error) {
	query := `
        SELECT
            c.code,
            c.name,
            COUNT(*) as record_count,
            MIN(cp.price_date) as earliest_date,
            MAX(cp.price_date) as latest_date
        FROM commodity_prices cp
        INNER JOIN commodities c ON cp.commodity_id = c.id
        GROUP BY c.code, c.name
        ORDER BY c.code
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price summary: %w", err)
	}
	defer rows.Close()

	summaries := []model.CommoditySummary{}

	for rows.Next() {
		var s model.CommoditySummary

		err := rows.Scan(
			&s.Code,
			&s.Name,
			&s.RecordCount,
			&s.EarliestDate,
			&s.LatestDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price summary results: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price summary results: %w", err)
	}

	return summaries, nil
}

// GetPrice retrieves one stored price row by commodity and date.
// Returns sql.ErrNoRows wrapped when no row exists.
func (r *PriceRepository) GetPrice(commodityID, priceDate string) (model.CommodityPrice, error) {
	query := `
        SELECT id, commodity_id, price_date, price_value, cash_bid, cash_offer,
               three_month_bid, three_month_offer, source, created_at, updated_at
        FROM commodity_prices
        WHERE commodity_id = ? AND price_date = ?
    `

	var p model.CommodityPrice
	var createdAt, updatedAt string

	err := r.getQuerier().QueryRow(query, commodityID, priceDate).Scan(
		&p.ID,
		&p.CommodityID,
		&p.PriceDate,
		&p.PriceValue,
		&p.CashBid,
		&p.CashOffer,
		&p.ThreeMonthBid,
		&p.ThreeMonthOffer,
		&p.Source,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.CommodityPrice{}, fmt.Errorf("failed to query commodity price: %w", err)
	}

	if p.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.CommodityPrice{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if p.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.CommodityPrice{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return p, nil
}
