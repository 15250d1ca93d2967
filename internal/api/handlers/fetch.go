package handlers

import (
	"errors"
	"net/http"

	"github.com/ndtduy/commodity-data-backend/internal/api/response"
	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/service"
)

// FetchHandler handles HTTP requests for the fetch pipeline endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fetchService.
type FetchHandler struct {
	fetchService *service.FetchService
}

// NewFetchHandler creates a new FetchHandler with the provided service dependency.
func NewFetchHandler(fetchService *service.FetchService) *FetchHandler {
	return &FetchHandler{
		fetchService: fetchService,
	}
}

// FetchDataJSON handles GET requests to fetch fresh data from an upstream
// source, persist it and return the chart payload.
//
// Endpoint: GET /api/fetch-data-json?source={copper|zinc|oil}
// Response: 200 OK with FetchResult
// Error: 400 Bad Request if the source is unknown or the upstream payload is empty
// Error: 500 Internal Server Error if the upstream fetch fails
func (h *FetchHandler) FetchDataJSON(w http.ResponseWriter, r *http.Request) {
	source := sourceParam(r)

	result, err := h.fetchService.FetchSource(r.Context(), source)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownSource) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownSource.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrNoUpstreamData) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNoUpstreamData.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToFetchData.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// FetchDataDirect handles GET requests to fetch fresh data from an upstream
// source and return it as a downloadable spreadsheet. Nothing is persisted.
//
// Endpoint: GET /api/fetch-lme-data-direct?source={copper|zinc|oil}
// Response: 200 OK with an XLSX attachment
// Error: 400 Bad Request if the source is unknown or the upstream payload is empty
// Error: 500 Internal Server Error if the upstream fetch fails
func (h *FetchHandler) FetchDataDirect(w http.ResponseWriter, r *http.Request) {
	source := sourceParam(r)

	workbook, err := h.fetchService.FetchWorkbook(r.Context(), source)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownSource) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownSource.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrNoUpstreamData) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNoUpstreamData.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToFetchData.Error(), err.Error())
		return
	}

	response.RespondXLSX(w, workbook.Filename, workbook.Content)
}

// GetCachedData handles GET requests to read the latest snapshot written by
// a previous fetch, without touching any upstream.
//
// Endpoint: GET /api/get-cached-data?source={copper|zinc|oil}
// Response: 200 OK with the raw snapshot JSON
// Error: 400 Bad Request if the source is unknown
// Error: 404 Not Found if no snapshot has been written yet
// Error: 500 Internal Server Error if the snapshot cannot be read
func (h *FetchHandler) GetCachedData(w http.ResponseWriter, r *http.Request) {
	source := sourceParam(r)

	data, err := h.fetchService.CachedData(source)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownSource) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownSource.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToReadSnapshot.Error(), err.Error())
		return
	}

	response.RespondRawJSON(w, http.StatusOK, data)
}
