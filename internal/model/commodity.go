package model

// Commodity represents a tracked commodity from the database
type Commodity struct {
	ID   string
	Code string
	Name string
	Unit string
}

// CommoditySummary aggregates stored price coverage for one commodity.
type CommoditySummary struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	RecordCount  int64  `json:"record_count"`
	EarliestDate string `json:"earliest_date"`
	LatestDate   string `json:"latest_date"`
}
