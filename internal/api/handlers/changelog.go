package handlers

import (
	"net/http"

	"github.com/ndtduy/commodity-data-backend/internal/api/request"
	"github.com/ndtduy/commodity-data-backend/internal/api/response"
	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/service"
	"github.com/ndtduy/commodity-data-backend/internal/validation"
)

// ChangeLogHandler handles HTTP requests for change log endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the changeLogService.
type ChangeLogHandler struct {
	changeLogService *service.ChangeLogService
}

// NewChangeLogHandler creates a new ChangeLogHandler with the provided service dependency.
func NewChangeLogHandler(changeLogService *service.ChangeLogService) *ChangeLogHandler {
	return &ChangeLogHandler{
		changeLogService: changeLogService,
	}
}

// CreateChangeLog handles POST requests to record a manual change log entry.
//
// Endpoint: POST /api/logs/change
// Request Body: CreateChangeLogRequest (summary required, details optional)
// Response: 200 OK with {"status": "success", "message": "Log saved"}
// Error: 400 Bad Request if the body is invalid or the summary is missing
// Error: 500 Internal Server Error if the entry cannot be stored
func (h *ChangeLogHandler) CreateChangeLog(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateChangeLogRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateChangeLog(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrSummaryRequired.Error(), err.Error())
		return
	}

	if err := h.changeLogService.CreateChangeLog(r.Context(), req); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveChangeLog.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Log saved",
	})
}
