package repository

import (
	"fmt"
	"time"
)

// ParseTime parses the date and timestamp formats this schema stores:
// "2006-01-02" for price dates, SQLite's CURRENT_TIMESTAMP layout for the
// created_at/updated_at columns, and RFC3339 for values written by tests.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
