package testutil

import (
	"context"
	"time"

	"github.com/ndtduy/commodity-data-backend/internal/lme"
	"github.com/ndtduy/commodity-data-backend/internal/oilprice"
	"github.com/ndtduy/commodity-data-backend/internal/pricefeed"
)

// MockLMEClient is a mock implementation of lme.Client for testing.
// It returns predefined test data instead of driving a real browser.
type MockLMEClient struct {
	// MockResponse is the response to return from FetchChartData
	MockResponse lme.Response
	// MockError is the error to return from FetchChartData
	MockError error
	// FetchCount tracks how many times FetchChartData was called
	FetchCount int
	// LastStartDate and LastEndDate capture the requested range
	LastStartDate string
	LastEndDate   string
}

// NewMockLMEClient creates a new mock LME client with default test data.
// The default data includes 5 days of prices suitable for testing.
func NewMockLMEClient() *MockLMEClient {
	return &MockLMEClient{
		MockResponse: CreateMockLMEResponse(5),
	}
}

// FetchChartData mocks the chart data fetch with predefined test data.
// It returns the configured MockResponse and MockError.
func (m *MockLMEClient) FetchChartData(_ context.Context, _ pricefeed.Source, startDate, endDate string) (lme.Response, error) {
	m.FetchCount++
	m.LastStartDate = startDate
	m.LastEndDate = endDate
	if m.MockError != nil {
		return lme.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// WithError configures the mock to return the specified error.
func (m *MockLMEClient) WithError(err error) *MockLMEClient {
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified response.
func (m *MockLMEClient) WithResponse(resp lme.Response) *MockLMEClient {
	m.MockResponse = resp
	return m
}

// WithEmptyResponse configures the mock to return a response without labels.
func (m *MockLMEClient) WithEmptyResponse() *MockLMEClient {
	m.MockResponse = lme.Response{}
	return m
}

// CreateMockLMEResponse creates a mock LME chart response with test data.
// The response includes `days` consecutive dates starting 2023-01-02 in the
// upstream's DD/MM/YYYY label format, with all four bid/offer series.
func CreateMockLMEResponse(days int) lme.Response {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	labels := make([]string, days)
	cashBid := make([]*float64, days)
	cashOffer := make([]*float64, days)
	threeMonthBid := make([]*float64, days)
	threeMonthOffer := make([]*float64, days)

	basePrice := 8500.0
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		labels[i] = date.Format("02/01/2006")

		bid := basePrice + float64(i)*10
		offer := bid + 2.5
		tmBid := bid + 50
		tmOffer := tmBid + 2.5

		cashBid[i] = &bid
		cashOffer[i] = &offer
		threeMonthBid[i] = &tmBid
		threeMonthOffer[i] = &tmOffer
	}

	return lme.Response{
		Labels: labels,
		Datasets: []lme.Dataset{
			{RowTitle: "Cash", Label: "Bid", Data: cashBid},
			{RowTitle: "Cash", Label: "Offer", Data: cashOffer},
			{RowTitle: "3-months", Label: "Bid", Data: threeMonthBid},
			{RowTitle: "3-months", Label: "Offer", Data: threeMonthOffer},
		},
	}
}

// MockOilClient is a mock implementation of oilprice.Client for testing.
// It returns predefined test data instead of driving a real browser.
type MockOilClient struct {
	// MockResponse is the response to return from FetchPrices
	MockResponse oilprice.Response
	// MockError is the error to return from FetchPrices
	MockError error
	// FetchCount tracks how many times FetchPrices was called
	FetchCount int
}

// NewMockOilClient creates a new mock oilprice client with default test
// data covering 5 days.
func NewMockOilClient() *MockOilClient {
	return &MockOilClient{
		MockResponse: CreateMockOilResponse(5),
	}
}

// FetchPrices mocks the widget fetch with predefined test data.
// It returns the configured MockResponse and MockError.
func (m *MockOilClient) FetchPrices(_ context.Context, _ pricefeed.Source) (oilprice.Response, error) {
	m.FetchCount++
	if m.MockError != nil {
		return oilprice.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// WithError configures the mock to return the specified error.
func (m *MockOilClient) WithError(err error) *MockOilClient {
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified response.
func (m *MockOilClient) WithResponse(resp oilprice.Response) *MockOilClient {
	m.MockResponse = resp
	return m
}

// WithEmptyResponse configures the mock to return a response without prices.
func (m *MockOilClient) WithEmptyResponse() *MockOilClient {
	m.MockResponse = oilprice.Response{}
	return m
}

// CreateMockOilResponse creates a mock oilprice widget response with test
// data: `days` consecutive UTC days of WTI prices starting 2023-06-01.
func CreateMockOilResponse(days int) oilprice.Response {
	start := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	entries := make([]oilprice.Entry, days)
	basePrice := 72.0
	for i := 0; i < days; i++ {
		ts := start.AddDate(0, 0, i)
		entries[i] = oilprice.Entry{
			Date:   ts.Format("2006-01-02 15:04:05"),
			Price:  oilprice.NewNumber(basePrice + float64(i)*0.25),
			Change: oilprice.NewNumber(0.25),
			Time:   oilprice.NewNumber(float64(ts.Unix())),
		}
	}

	return oilprice.Response{Prices: entries}
}

// OilEntry builds a single widget entry from a timestamp and price, for
// tests that need precise control over the payload.
func OilEntry(ts time.Time, price float64) oilprice.Entry {
	return oilprice.Entry{
		Date:   ts.UTC().Format("2006-01-02 15:04:05"),
		Price:  oilprice.NewNumber(price),
		Change: oilprice.NewNumber(0),
		Time:   oilprice.NewNumber(float64(ts.Unix())),
	}
}

var _ lme.Client = (*MockLMEClient)(nil)
var _ oilprice.Client = (*MockOilClient)(nil)
