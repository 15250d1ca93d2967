package request

// CreateChangeLogRequest represents the request body for recording a manual
// change log entry against the dataset.
type CreateChangeLogRequest struct {
	Summary string   `json:"summary"`
	Details []string `json:"details,omitempty"`
}
