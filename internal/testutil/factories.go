package testutil

import (
	"database/sql"
	"testing"

	"github.com/ndtduy/commodity-data-backend/internal/model"
)

// CommodityBuilder provides a fluent interface for creating test commodities.
//
// Example usage:
//
//	// Simple creation with defaults
//	commodity := testutil.NewCommodity().Build(t, db)
//
//	// Customized commodity
//	commodity := testutil.NewCommodity().
//	    WithCode("NICKEL").
//	    WithName("Nickel").
//	    Build(t, db)
type CommodityBuilder struct {
	ID   string
	Code string
	Name string
	Unit string
}

// NewCommodity creates a CommodityBuilder with sensible defaults.
func NewCommodity() *CommodityBuilder {
	return &CommodityBuilder{
		ID:   MakeID(),
		Code: MakeCode("TST"),
		Name: "Test Commodity",
		Unit: "USD/tonne",
	}
}

// WithID sets a custom ID.
func (b *CommodityBuilder) WithID(id string) *CommodityBuilder {
	b.ID = id
	return b
}

// WithCode sets a custom code.
func (b *CommodityBuilder) WithCode(code string) *CommodityBuilder {
	b.Code = code
	return b
}

// WithName sets a custom name.
func (b *CommodityBuilder) WithName(name string) *CommodityBuilder {
	b.Name = name
	return b
}

// WithUnit sets a custom unit.
func (b *CommodityBuilder) WithUnit(unit string) *CommodityBuilder {
	b.Unit = unit
	return b
}

// Build creates the commodity in the database and returns it.
func (b *CommodityBuilder) Build(t *testing.T, db *sql.DB) model.Commodity {
	t.Helper()

	query := `
		INSERT INTO commodities (id, code, name, unit)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Code, b.Name, b.Unit)
	if err != nil {
		t.Fatalf("Failed to create test commodity: %v", err)
	}

	return model.Commodity{
		ID:   b.ID,
		Code: b.Code,
		Name: b.Name,
		Unit: b.Unit,
	}
}

// SeededCommodity returns one of the commodities inserted by the seed
// migration (COPPER, ZINC or OIL).
//
// Example usage:
//
//	copper := testutil.SeededCommodity(t, db, "COPPER")
func SeededCommodity(t *testing.T, db *sql.DB, code string) model.Commodity {
	t.Helper()

	var c model.Commodity
	err := db.QueryRow(`SELECT id, code, name, unit FROM commodities WHERE code = ?`, code).Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.Unit,
	)
	if err != nil {
		t.Fatalf("Failed to load seeded commodity %s: %v", code, err)
	}

	return c
}

// PriceBuilder provides a fluent interface for creating test price rows.
//
// Example usage:
//
//	price := testutil.NewPrice(commodity.ID).
//	    WithDate("2024-03-05").
//	    WithValue(8500.0).
//	    Build(t, db)
type PriceBuilder struct {
	ID              string
	CommodityID     string
	PriceDate       string
	PriceValue      *float64
	CashBid         *float64
	CashOffer       *float64
	ThreeMonthBid   *float64
	ThreeMonthOffer *float64
	Source          string
}

// NewPrice creates a PriceBuilder with sensible defaults.
func NewPrice(commodityID string) *PriceBuilder {
	value := 100.0
	return &PriceBuilder{
		ID:          MakeID(),
		CommodityID: commodityID,
		PriceDate:   "2024-01-15",
		PriceValue:  &value,
		Source:      "LME",
	}
}

// WithDate sets the price date (YYYY-MM-DD).
func (b *PriceBuilder) WithDate(date string) *PriceBuilder {
	b.PriceDate = date
	return b
}

// WithValue sets the primary price value.
func (b *PriceBuilder) WithValue(value float64) *PriceBuilder {
	b.PriceValue = &value
	return b
}

// WithNoValue clears the primary price value, leaving the row dated but
// without a usable price.
func (b *PriceBuilder) WithNoValue() *PriceBuilder {
	b.PriceValue = nil
	return b
}

// WithBids sets the cash and three-month bid/offer fields.
func (b *PriceBuilder) WithBids(cashBid, cashOffer, threeMonthBid, threeMonthOffer float64) *PriceBuilder {
	b.CashBid = &cashBid
	b.CashOffer = &cashOffer
	b.ThreeMonthBid = &threeMonthBid
	b.ThreeMonthOffer = &threeMonthOffer
	return b
}

// WithSource sets the provenance string.
func (b *PriceBuilder) WithSource(source string) *PriceBuilder {
	b.Source = source
	return b
}

// Build creates the price row in the database and returns it.
func (b *PriceBuilder) Build(t *testing.T, db *sql.DB) model.CommodityPrice {
	t.Helper()

	query := `
		INSERT INTO commodity_prices (id, commodity_id, price_date, price_value,
		                              cash_bid, cash_offer, three_month_bid, three_month_offer, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.CommodityID, b.PriceDate, b.PriceValue,
		b.CashBid, b.CashOffer, b.ThreeMonthBid, b.ThreeMonthOffer, b.Source)
	if err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}

	return model.CommodityPrice{
		ID:              b.ID,
		CommodityID:     b.CommodityID,
		PriceDate:       b.PriceDate,
		PriceValue:      b.PriceValue,
		CashBid:         b.CashBid,
		CashOffer:       b.CashOffer,
		ThreeMonthBid:   b.ThreeMonthBid,
		ThreeMonthOffer: b.ThreeMonthOffer,
		Source:          b.Source,
	}
}

// Convenience functions

// CreatePrice creates a price row with the given date and value.
//
// Example usage:
//
//	testutil.CreatePrice(t, db, copper.ID, "2024-03-05", 8500.0)
func CreatePrice(t *testing.T, db *sql.DB, commodityID, date string, value float64) model.CommodityPrice {
	t.Helper()
	return NewPrice(commodityID).WithDate(date).WithValue(value).Build(t, db)
}
