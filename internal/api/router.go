package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndtduy/commodity-data-backend/internal/api/handlers"
	custommiddleware "github.com/ndtduy/commodity-data-backend/internal/api/middleware"
	"github.com/ndtduy/commodity-data-backend/internal/config"
	"github.com/ndtduy/commodity-data-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	fetchService *service.FetchService,
	priceService *service.PriceService,
	changeLogService *service.ChangeLogService,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(systemService)
	r.Get("/", systemHandler.Root)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
		})

		fetchHandler := handlers.NewFetchHandler(fetchService)
		r.Get("/fetch-data-json", fetchHandler.FetchDataJSON)
		r.Get("/fetch-lme-data-direct", fetchHandler.FetchDataDirect)
		r.Get("/get-cached-data", fetchHandler.GetCachedData)

		// Stored data reads
		r.Route("/db", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(priceService)
			r.Get("/chart-data", priceHandler.ChartData)
			r.Get("/latest-prices", priceHandler.LatestPrices)
			r.Get("/summary", priceHandler.Summary)
		})

		r.Route("/logs", func(r chi.Router) {
			changeLogHandler := handlers.NewChangeLogHandler(changeLogService)
			r.Post("/change", changeLogHandler.CreateChangeLog)
		})
	})

	return r
}
