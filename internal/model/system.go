package model

// ServiceInfo is the root endpoint payload describing the running service.
type ServiceInfo struct {
	Status           string            `json:"status"`
	Service          string            `json:"service"`
	Version          string            `json:"version"`
	Method           string            `json:"method"`
	Database         string            `json:"database"`
	Endpoints        map[string]string `json:"endpoints"`
	AvailableSources []string          `json:"available_sources"`
	Sources          map[string]string `json:"sources"`
	Storage          string            `json:"storage"`
}
