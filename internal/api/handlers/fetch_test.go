package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndtduy/commodity-data-backend/internal/api/handlers"
	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/model"
	"github.com/ndtduy/commodity-data-backend/internal/testutil"
)

//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestFetchHandler_FetchDataJSON(t *testing.T) {
	t.Run("fetches and persists copper data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mockLME := testutil.NewMockLMEClient()
		mockOil := testutil.NewMockOilClient()
		fs := testutil.NewTestFetchService(t, db, mockLME, mockOil)
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-data-json",
			map[string]string{"source": "copper"},
		)
		w := httptest.NewRecorder()

		handler.FetchDataJSON(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.FetchResult
		err := json.NewDecoder(w.Body).Decode(&response)
		if err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response.Source != "copper" {
			t.Errorf("Expected source 'copper', got '%s'", response.Source)
		}
		if response.Name != "Copper" {
			t.Errorf("Expected name 'Copper', got '%s'", response.Name)
		}
		if len(response.Data) != 5 {
			t.Errorf("Expected 5 records, got %d", len(response.Data))
		}
		if response.SavedToDB != 5 {
			t.Errorf("Expected 5 rows saved, got %d", response.SavedToDB)
		}

		if mockLME.FetchCount != 1 {
			t.Errorf("Expected 1 upstream fetch, got %d", mockLME.FetchCount)
		}

		testutil.AssertRowCount(t, db, "commodity_prices", 5)
		testutil.AssertRowCount(t, db, "fetch_logs", 1)
	})

	t.Run("defaults to copper when source is omitted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mockLME := testutil.NewMockLMEClient()
		fs := testutil.NewTestFetchService(t, db, mockLME, testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := httptest.NewRequest(http.MethodGet, "/api/fetch-data-json", nil)
		w := httptest.NewRecorder()

		handler.FetchDataJSON(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.FetchResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Source != "copper" {
			t.Errorf("Expected source 'copper', got '%s'", response.Source)
		}
	})

	t.Run("returns 400 for an unknown source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFetchService(t, db, testutil.NewMockLMEClient(), testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-data-json",
			map[string]string{"source": "gold"},
		)
		w := httptest.NewRecorder()

		handler.FetchDataJSON(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var response map[string]string
		err := json.NewDecoder(w.Body).Decode(&response)
		if err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if response["error"] != apperrors.ErrUnknownSource.Error() {
			t.Errorf("Expected unknown source error, got '%s'", response["error"])
		}
	})

	t.Run("returns 400 when upstream has no data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mockLME := testutil.NewMockLMEClient().WithEmptyResponse()
		fs := testutil.NewTestFetchService(t, db, mockLME, testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-data-json",
			map[string]string{"source": "copper"},
		)
		w := httptest.NewRecorder()

		handler.FetchDataJSON(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var response map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response["error"] != apperrors.ErrNoUpstreamData.Error() {
			t.Errorf("Expected no data error, got '%s'", response["error"])
		}
	})

	t.Run("returns 500 when the upstream fetch fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mockLME := testutil.NewMockLMEClient().WithError(fmt.Errorf("browser timeout"))
		fs := testutil.NewTestFetchService(t, db, mockLME, testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-data-json",
			map[string]string{"source": "copper"},
		)
		w := httptest.NewRecorder()

		handler.FetchDataJSON(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}

		var response map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response["error"] != apperrors.ErrFailedToFetchData.Error() {
			t.Errorf("Expected fetch failure error, got '%s'", response["error"])
		}
	})
}

func TestFetchHandler_FetchDataDirect(t *testing.T) {
	t.Run("returns a copper workbook download without persisting", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFetchService(t, db, testutil.NewMockLMEClient(), testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-lme-data-direct",
			map[string]string{"source": "copper"},
		)
		w := httptest.NewRecorder()

		handler.FetchDataDirect(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		contentType := w.Header().Get("Content-Type")
		if contentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Errorf("Expected XLSX content type, got '%s'", contentType)
		}

		disposition := w.Header().Get("Content-Disposition")
		if !strings.HasPrefix(disposition, `attachment; filename="LME_Copper_Official_Prices_`) {
			t.Errorf("Expected attachment disposition, got '%s'", disposition)
		}
		if !strings.HasSuffix(disposition, `.xlsx"`) {
			t.Errorf("Expected .xlsx filename, got '%s'", disposition)
		}

		if w.Body.Len() == 0 {
			t.Error("Expected workbook bytes in the body")
		}

		// Direct downloads bypass the store entirely
		testutil.AssertRowCount(t, db, "commodity_prices", 0)
		testutil.AssertRowCount(t, db, "fetch_logs", 0)
	})

	t.Run("returns an oil workbook download", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFetchService(t, db, testutil.NewMockLMEClient(), testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-lme-data-direct",
			map[string]string{"source": "oil"},
		)
		w := httptest.NewRecorder()

		handler.FetchDataDirect(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		disposition := w.Header().Get("Content-Disposition")
		if !strings.HasPrefix(disposition, `attachment; filename="Oil_Price_WTI_`) {
			t.Errorf("Expected oil filename, got '%s'", disposition)
		}
	})

	t.Run("returns 400 for an unknown source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFetchService(t, db, testutil.NewMockLMEClient(), testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-lme-data-direct",
			map[string]string{"source": "gold"},
		)
		w := httptest.NewRecorder()

		handler.FetchDataDirect(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestFetchHandler_GetCachedData(t *testing.T) {
	t.Run("returns 404 before any fetch has run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFetchService(t, db, testutil.NewMockLMEClient(), testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/get-cached-data",
			map[string]string{"source": "copper"},
		)
		w := httptest.NewRecorder()

		handler.GetCachedData(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}

		var response map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response["error"] != apperrors.ErrSnapshotNotFound.Error() {
			t.Errorf("Expected snapshot not found error, got '%s'", response["error"])
		}
	})

	t.Run("returns the snapshot written by a previous fetch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFetchService(t, db, testutil.NewMockLMEClient(), testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		fetchReq := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/fetch-data-json",
			map[string]string{"source": "copper"},
		)
		fetchW := httptest.NewRecorder()
		handler.FetchDataJSON(fetchW, fetchReq)
		if fetchW.Code != http.StatusOK {
			t.Fatalf("Fetch failed with %d: %s", fetchW.Code, fetchW.Body.String())
		}

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/get-cached-data",
			map[string]string{"source": "copper"},
		)
		w := httptest.NewRecorder()

		handler.GetCachedData(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", ct)
		}

		var response model.FetchResult
		err := json.NewDecoder(w.Body).Decode(&response)
		if err != nil {
			t.Fatalf("Failed to decode snapshot: %v", err)
		}

		if response.Source != "copper" {
			t.Errorf("Expected source 'copper', got '%s'", response.Source)
		}
		if len(response.Data) != 5 {
			t.Errorf("Expected 5 records, got %d", len(response.Data))
		}
	})

	t.Run("returns 400 for an unknown source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFetchService(t, db, testutil.NewMockLMEClient(), testutil.NewMockOilClient())
		handler := handlers.NewFetchHandler(fs)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/get-cached-data",
			map[string]string{"source": "gold"},
		)
		w := httptest.NewRecorder()

		handler.GetCachedData(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
