package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// defaultSource is used when a fetch or cache request omits the source
// query parameter.
const defaultSource = "copper"

// parseJSON decodes a request body into the given request type. Unknown
// fields are tolerated; a syntactically invalid body is an error.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// sourceParam returns the source query parameter, defaulting to copper
// when absent.
func sourceParam(r *http.Request) string {
	source := r.URL.Query().Get("source")
	if source == "" {
		return defaultSource
	}
	return source
}
