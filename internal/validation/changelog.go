package validation

import (
	"strings"

	"github.com/ndtduy/commodity-data-backend/internal/api/request"
)

// ValidateCreateChangeLog validates a change log creation request.
//
// Required fields:
//   - summary: Must be non-empty after trimming whitespace
//
// Details entries are free text and are not constrained.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateChangeLog(req request.CreateChangeLogRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Summary) == "" {
		errors["summary"] = "summary is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
