package lme

// Response represents the raw JSON response from the LME trading-data
// chart API (Shape A): a display-date axis plus parallel value series.
//
// The structure includes:
//   - Labels: one display date per data point, typically DD/MM/YYYY
//   - Datasets: one value series per (RowTitle, Label) pair, aligned by
//     index with Labels
type Response struct {
	Labels   []string  `json:"Labels"`
	Datasets []Dataset `json:"Datasets"`
}

// Dataset is one value series. RowTitle names the price series ("Cash",
// "3-months", "Official price"), Label the side ("Bid", "Offer"). Data
// carries null for dates the series has no value on and may be shorter
// than the label axis.
type Dataset struct {
	RowTitle string     `json:"RowTitle"`
	Label    string     `json:"Label"`
	Data     []*float64 `json:"Data"`
}
