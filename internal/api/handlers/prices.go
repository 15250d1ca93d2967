package handlers

import (
	"net/http"

	"github.com/ndtduy/commodity-data-backend/internal/api/response"
	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/service"
	"github.com/ndtduy/commodity-data-backend/internal/validation"
)

// defaultChartStart bounds chart reads when no start_date is given.
const defaultChartStart = "2023-01-01"

// PriceHandler handles HTTP requests for stored price reads.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the priceService.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// ChartData handles GET requests to read stored prices merged into one
// point per date for chart display.
//
// Endpoint: GET /api/db/chart-data?start_date=2023-01-01
// Response: 200 OK with ChartDataResponse
// Error: 400 Bad Request if start_date is not a YYYY-MM-DD date
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) ChartData(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	if startDate == "" {
		startDate = defaultChartStart
	}

	if err := validation.ValidateChartQuery(startDate); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDate.Error(), err.Error())
		return
	}

	chartData, err := h.priceService.GetChartData(startDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, chartData)
}

// LatestPrices handles GET requests to read the most recent stored price
// per commodity.
//
// Endpoint: GET /api/db/latest-prices
// Response: 200 OK with LatestPricesResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) LatestPrices(w http.ResponseWriter, _ *http.Request) {
	latest, err := h.priceService.GetLatestPrices()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, latest)
}

// Summary handles GET requests to read per-commodity coverage: row counts
// and stored date ranges.
//
// Endpoint: GET /api/db/summary
// Response: 200 OK with SummaryResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.priceService.GetSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
