package model

import "time"

// ChangeLogEntry is a manually submitted note describing a data or
// system change.
type ChangeLogEntry struct {
	ID        string
	Summary   string
	Details   []string
	CreatedAt time.Time
}
