package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUnknownSource indicates that a fetch was requested for a source key
	// that is not in the source registry.
	ErrUnknownSource = errors.New("unknown data source")

	// ErrCommodityNotFound indicates that a commodity with the given code does not exist.
	ErrCommodityNotFound = errors.New("commodity not found")

	// ErrSnapshotNotFound indicates that no cached snapshot exists for a source.
	ErrSnapshotNotFound = errors.New("no cached snapshot for source")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrNoUpstreamData indicates that an upstream responded without any
	// usable price data (e.g. an empty label set).
	ErrNoUpstreamData = errors.New("no data received from upstream")

	// ErrInvalidDate indicates that a date parameter is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date parameter")

	// ErrEmptySource indicates that the required source query parameter is missing.
	ErrEmptySource = errors.New("source parameter is required")

	// ErrSummaryRequired indicates that a change log entry was submitted without a summary.
	ErrSummaryRequired = errors.New("summary is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Upstream fetch errors
	ErrFailedToFetchData  = errors.New("failed to fetch data from upstream")
	ErrFailedToParseData  = errors.New("failed to parse upstream payload")
	ErrFailedToBuildExcel = errors.New("failed to build excel workbook")

	// Store errors
	ErrFailedToSavePrices          = errors.New("failed to save prices")
	ErrFailedToRetrievePrices      = errors.New("failed to retrieve prices")
	ErrFailedToRetrieveSummary     = errors.New("failed to retrieve summary")
	ErrFailedToSaveChangeLog       = errors.New("failed to save change log")
	ErrFailedToReadSnapshot        = errors.New("failed to read cached snapshot")
	ErrFailedToRecordFetchLog      = errors.New("failed to record fetch log")
	ErrFailedToRetrieveCommodities = errors.New("failed to retrieve commodities")
)
