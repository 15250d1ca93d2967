package validation

import (
	"fmt"
	"strings"
	"time"
)

// Common validation errors
var (
	ErrInvalidDateFormat = fmt.Errorf("invalid date format, use YYYY-MM-DD")
)

// Error collects field-specific validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateDate checks that a string is a calendar date in YYYY-MM-DD format.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDateFormat, date)
	}
	return nil
}
