package model

import (
	"encoding/json"
	"time"
)

// ChartRecord is one normalized upstream observation returned by a fetch.
type ChartRecord struct {
	Date   string   `json:"date"`
	Value  *float64 `json:"value"`
	Source string   `json:"source"`
}

// FetchResult is the payload returned by the fetch endpoint and written to
// the snapshot cache. SavedToDB carries the number of rows the store
// reported as inserted or updated, zero when persistence failed.
type FetchResult struct {
	Source    string        `json:"source"`
	Name      string        `json:"name"`
	Data      []ChartRecord `json:"data"`
	FetchedAt time.Time     `json:"fetched_at"`
	SavedToDB int64         `json:"saved_to_db"`
}

// ChartPoint merges every commodity value observed on one date. It
// marshals as a single flat object with the date plus one key per
// lower-cased commodity code. Values are pointers because a stored row
// may carry no usable price; such dates still appear with a null value.
type ChartPoint struct {
	Date   string
	Values map[string]*float64
}

func (p ChartPoint) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(p.Values)+1)
	obj["date"] = p.Date
	for code, value := range p.Values {
		obj[code] = value
	}
	return json.Marshal(obj)
}

// ChartDataResponse is the envelope for merged chart data reads.
type ChartDataResponse struct {
	Success  bool         `json:"success"`
	Data     []ChartPoint `json:"data"`
	Count    int          `json:"count"`
	LoadedAt time.Time    `json:"loaded_at"`
}

// LatestPricesResponse is the envelope for latest-price reads.
type LatestPricesResponse struct {
	Success  bool          `json:"success"`
	Data     []LatestPrice `json:"data"`
	Count    int           `json:"count"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// SummaryPayload wraps the per-commodity summaries with a total count.
type SummaryPayload struct {
	TotalCommodities int                `json:"total_commodities"`
	Commodities      []CommoditySummary `json:"commodities"`
}

// SummaryResponse is the envelope for per-commodity coverage summaries.
type SummaryResponse struct {
	Success  bool           `json:"success"`
	Summary  SummaryPayload `json:"summary"`
	LoadedAt time.Time      `json:"loaded_at"`
}
