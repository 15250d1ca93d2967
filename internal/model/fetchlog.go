package model

import "time"

// Fetch statuses recorded for provenance. Success means all fetched records
// were persisted, partial means the payload arrived but persistence fell
// short, failure means the fetch or parse itself failed.
const (
	FetchStatusSuccess = "success"
	FetchStatusPartial = "partial"
	FetchStatusFailure = "failure"
)

// FetchLog records the outcome of one fetch attempt against an upstream.
// CommodityID is nil when the commodity could not be resolved.
type FetchLog struct {
	ID             string
	CommodityID    *string
	Status         string
	RecordsFetched int64
	ErrorMessage   *string
	DurationMS     int64
	CreatedAt      time.Time
}
