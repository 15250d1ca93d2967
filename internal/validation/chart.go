package validation

// ValidateChartQuery validates the query parameters of a chart data read.
// The start date bounds a lexicographic comparison against stored ISO
// dates, so anything that is not a real YYYY-MM-DD date is rejected.
func ValidateChartQuery(startDate string) error {
	return ValidateDate(startDate)
}
