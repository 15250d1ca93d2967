package pricefeed

import (
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "day-first date is converted to ISO",
			input:    "05/03/2024",
			expected: "2024-03-05",
		},
		{
			name:     "first of January",
			input:    "01/01/2023",
			expected: "2023-01-01",
		},
		{
			name:     "ISO date passes through unchanged",
			input:    "2024-03-05",
			expected: "2024-03-05",
		},
		{
			name:     "unparsable label passes through unchanged",
			input:    "not a date",
			expected: "not a date",
		},
		{
			name:     "empty string passes through unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "impossible calendar date passes through unchanged",
			input:    "32/01/2024",
			expected: "32/01/2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	value := func(v float64) *float64 { return &v }

	t.Run("keeps one record per date, last occurrence wins", func(t *testing.T) {
		records := []Record{
			{Date: "2024-01-10", Value: value(100)},
			{Date: "2024-01-11", Value: value(110)},
			{Date: "2024-01-10", Value: value(105)},
		}

		out := Dedupe(records, "")

		if len(out) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(out))
		}

		if out[0].Date != "2024-01-10" || out[1].Date != "2024-01-11" {
			t.Errorf("Expected first-seen date order, got %s then %s", out[0].Date, out[1].Date)
		}

		if out[0].Value == nil || *out[0].Value != 105 {
			t.Errorf("Expected later duplicate to win with value 105, got %v", out[0].Value)
		}
	})

	t.Run("duplicate replaces the whole record, not single fields", func(t *testing.T) {
		records := []Record{
			{Date: "2024-01-10", Value: value(100), CashBid: value(99)},
			{Date: "2024-01-10", Value: value(105)},
		}

		out := Dedupe(records, "")

		if len(out) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(out))
		}

		if out[0].CashBid != nil {
			t.Errorf("Expected cash bid from earlier record to be discarded, got %v", *out[0].CashBid)
		}
	})

	t.Run("drops records dated before the cutoff", func(t *testing.T) {
		records := []Record{
			{Date: "2022-12-30", Value: value(90)},
			{Date: "2023-01-01", Value: value(100)},
			{Date: "2023-01-02", Value: value(101)},
		}

		out := Dedupe(records, "2023-01-01")

		if len(out) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(out))
		}

		if out[0].Date != "2023-01-01" {
			t.Errorf("Expected cutoff date itself to survive, got %s", out[0].Date)
		}
	})

	t.Run("empty cutoff keeps everything", func(t *testing.T) {
		records := []Record{
			{Date: "1999-05-05", Value: value(10)},
		}

		out := Dedupe(records, "")

		if len(out) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(out))
		}
	})

	t.Run("drops records without a date", func(t *testing.T) {
		records := []Record{
			{Date: "", Value: value(100)},
			{Date: "2024-01-10", Value: value(105)},
		}

		out := Dedupe(records, "")

		if len(out) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(out))
		}

		if out[0].Date != "2024-01-10" {
			t.Errorf("Expected dated record to survive, got %q", out[0].Date)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		out := Dedupe(nil, "2023-01-01")

		if len(out) != 0 {
			t.Errorf("Expected no records, got %d", len(out))
		}
	})
}
