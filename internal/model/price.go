package model

import "time"

// CommodityPrice is one stored daily price row. Dates are ISO YYYY-MM-DD
// strings; one row exists per (commodity, date).
type CommodityPrice struct {
	ID              string
	CommodityID     string
	PriceDate       string
	PriceValue      *float64
	CashBid         *float64
	CashOffer       *float64
	ThreeMonthBid   *float64
	ThreeMonthOffer *float64
	Source          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PriceRow is a stored price joined with its commodity, as read for charting.
type PriceRow struct {
	Code       string
	Name       string
	PriceDate  string
	PriceValue *float64
}

// LatestPrice is the newest stored price for one commodity, read from the
// v_latest_prices view.
type LatestPrice struct {
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	PriceDate       string    `json:"price_date"`
	PriceValue      *float64  `json:"price_value"`
	CashBid         *float64  `json:"cash_bid"`
	CashOffer       *float64  `json:"cash_offer"`
	ThreeMonthBid   *float64  `json:"three_month_bid"`
	ThreeMonthOffer *float64  `json:"three_month_offer"`
	Source          string    `json:"source"`
	UpdatedAt       time.Time `json:"updated_at"`
}
