package service

import (
	"database/sql"

	"github.com/ndtduy/commodity-data-backend/internal/database"
	"github.com/ndtduy/commodity-data-backend/internal/model"
	"github.com/ndtduy/commodity-data-backend/internal/pricefeed"
)

// Version is the service version reported on the root endpoint.
const Version = "3.0.0"

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// ServiceInfo describes the running service: version, fetch method,
// storage backends, the endpoint map and the registered sources.
func (s *SystemService) ServiceInfo() model.ServiceInfo {
	sourceNames := make(map[string]string)
	for _, src := range pricefeed.Sources() {
		sourceNames[src.Key] = src.Name
	}

	return model.ServiceInfo{
		Status:   "running",
		Service:  "Commodity Data API",
		Version:  Version,
		Method:   "Direct chromedp fetch (Cloudflare bypass)",
		Database: "SQLite - commodity_data",
		Endpoints: map[string]string{
			"fetch":       "/api/fetch-data-json?source={copper|zinc|oil}",
			"db_chart":    "/api/db/chart-data?start_date=2023-01-01",
			"db_latest":   "/api/db/latest-prices",
			"db_summary":  "/api/db/summary",
			"cached_file": "/api/get-cached-data?source={copper|zinc|oil}",
			"download":    "/api/fetch-lme-data-direct?source={copper|zinc|oil}",
		},
		AvailableSources: pricefeed.SourceKeys(),
		Sources:          sourceNames,
		Storage:          "SQLite + JSON files",
	}
}
