package pricefeed

import "time"

// Record is one normalized daily observation produced by an upstream
// client. Date is ISO YYYY-MM-DD once normalization succeeds; a label that
// matches no known date format is carried through unchanged. Optional
// fields are nil when the upstream did not provide them.
type Record struct {
	Date            string
	Value           *float64
	CashBid         *float64
	CashOffer       *float64
	ThreeMonthBid   *float64
	ThreeMonthOffer *float64
	Source          string
}

// NormalizeDate converts a day-first DD/MM/YYYY date to ISO YYYY-MM-DD.
// Anything that does not parse, ISO dates included, is returned unchanged.
func NormalizeDate(s string) string {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

// Dedupe drops records dated strictly before the cutoff and collapses
// duplicate dates by full-record replacement, keeping the last occurrence.
// The result carries one record per distinct date in first-seen order; the
// store orders rows by date at read time.
func Dedupe(records []Record, cutoff string) []Record {
	byDate := make(map[string]Record, len(records))
	order := make([]string, 0, len(records))

	for _, r := range records {
		if r.Date == "" {
			continue
		}
		if cutoff != "" && r.Date < cutoff {
			continue
		}
		if _, seen := byDate[r.Date]; !seen {
			order = append(order, r.Date)
		}
		byDate[r.Date] = r
	}

	out := make([]Record, 0, len(order))
	for _, date := range order {
		out = append(out, byDate[date])
	}
	return out
}
