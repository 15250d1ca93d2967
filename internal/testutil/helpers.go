package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndtduy/commodity-data-backend/internal/filecache"
	"github.com/ndtduy/commodity-data-backend/internal/lme"
	"github.com/ndtduy/commodity-data-backend/internal/oilprice"
	"github.com/ndtduy/commodity-data-backend/internal/repository"
	"github.com/ndtduy/commodity-data-backend/internal/service"
)

// NewTestFetchService builds a FetchService on the given database and
// upstream clients. The snapshot cache is rooted in a per-test temp dir
// and the logger is a no-op.
func NewTestFetchService(t *testing.T, db *sql.DB, lmeClient lme.Client, oilClient oilprice.Client) *service.FetchService {
	t.Helper()

	cache, err := filecache.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test snapshot cache: %v", err)
	}

	return NewTestFetchServiceWithCache(t, db, lmeClient, oilClient, cache)
}

// NewTestFetchServiceWithCache is NewTestFetchService with a caller-owned
// cache, for tests that assert on the written snapshot files.
func NewTestFetchServiceWithCache(t *testing.T, db *sql.DB, lmeClient lme.Client, oilClient oilprice.Client, cache *filecache.Cache) *service.FetchService {
	t.Helper()

	return service.NewFetchService(
		repository.NewCommodityRepository(db),
		repository.NewPriceRepository(db),
		repository.NewFetchLogRepository(db),
		lmeClient,
		oilClient,
		cache,
		"2023-01-01",
		zap.NewNop(),
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	return service.NewPriceService(repository.NewPriceRepository(db))
}

func NewTestChangeLogService(t *testing.T, db *sql.DB) *service.ChangeLogService {
	t.Helper()

	return service.NewChangeLogService(repository.NewChangeLogRepository(db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeCode generates a unique commodity code for testing.
//
// Example usage:
//
//	code := testutil.MakeCode("TST")
//	// Returns: "TST1A2B"
func MakeCode(base string) string {
	if base == "" {
		base = "TST"
	}
	return base + randomAlphanumeric(4)
}

// Float64Ptr returns a pointer to the given value, for building optional
// price fields in test fixtures.
func Float64Ptr(v float64) *float64 {
	return &v
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
