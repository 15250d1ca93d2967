package oilprice

import (
	"strconv"
	"strings"
)

// Response represents the raw JSON response from the oilprice.com widget
// API (Shape B): a flat list of timestamped price points.
type Response struct {
	Prices []Entry `json:"prices"`
}

// Entry is one raw price point. The widget API is loose about types, so
// numeric fields decode through Number and a malformed entry is dropped
// during normalization instead of rejecting the whole payload.
type Entry struct {
	Date   string `json:"date"`
	Price  Number `json:"price"`
	Change Number `json:"change"`
	Time   Number `json:"time"`
}

// Number accepts JSON numbers and numeric strings. Anything else leaves the
// value unset; it never fails the surrounding unmarshal.
type Number struct {
	value float64
	ok    bool
}

// NewNumber returns a set Number, for building payloads in tests.
func NewNumber(v float64) Number {
	return Number{value: v, ok: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n.value = v
	n.ok = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.ok {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

// Float64 returns the parsed value and whether one was present.
func (n Number) Float64() (float64, bool) {
	return n.value, n.ok
}
