package lme

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/browser"
	"github.com/ndtduy/commodity-data-backend/internal/pricefeed"
)

// Client defines the interface for fetching LME trading data.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	FetchChartData(ctx context.Context, src pricefeed.Source, startDate, endDate string) (Response, error)
}

// BrowserClient fetches LME chart data through a real browser session. The
// chart API sits behind Cloudflare and only answers requests that originate
// from page context on lme.com.
type BrowserClient struct {
	engine browser.Engine
}

// NewBrowserClient creates an LME client on top of a browser engine.
func NewBrowserClient(engine browser.Engine) *BrowserClient {
	return &BrowserClient{engine: engine}
}

// FetchChartData opens the source's public page, then requests the chart
// API from inside it for the inclusive date range (YYYY-MM-DD).
func (c *BrowserClient) FetchChartData(ctx context.Context, src pricefeed.Source, startDate, endDate string) (Response, error) {
	apiURL := fmt.Sprintf(
		"https://www.lme.com/api/trading-data/chart-data?datasourceId=%s&startDate=%s&endDate=%s",
		src.DatasourceID, startDate, endDate,
	)

	page := browser.Page{
		URL:            src.PageURL,
		Settle:         3 * time.Second,
		AcceptCookies:  true,
		ScrollToBottom: true,
	}

	script := fmt.Sprintf(`(async () => {
		const response = await fetch(%q, {
			method: 'GET',
			headers: {
				'accept': '*/*',
				'cache-control': 'no-cache'
			}
		});
		if (!response.ok) {
			throw new Error('HTTP ' + response.status + ': ' + response.statusText);
		}
		return await response.json();
	})()`, apiURL)

	var resp Response
	if err := c.engine.FetchJSON(ctx, page, script, &resp); err != nil {
		return Response{}, fmt.Errorf("failed to fetch chart data for %s: %w", src.Key, err)
	}

	return resp, nil
}

// Canonical series names resolved from the alias table.
const (
	seriesCashBid         = "cash_bid"
	seriesCashOffer       = "cash_offer"
	seriesThreeMonthBid   = "three_month_bid"
	seriesThreeMonthOffer = "three_month_offer"
)

type seriesAlias struct {
	canonical string
	// primary aliases win over fallbacks when a payload carries both.
	primary bool
}

// seriesAliases maps normalized "{RowTitle}_{Label}" keys to canonical
// series names. The LME has shipped both "Cash"/"Official price" and
// "3-months"/"3 months" spellings; series outside this table are ignored.
var seriesAliases = map[string]seriesAlias{
	"cash_bid":             {seriesCashBid, true},
	"official_price_bid":   {seriesCashBid, false},
	"cash_offer":           {seriesCashOffer, true},
	"official_price_offer": {seriesCashOffer, false},
	"3-months_bid":         {seriesThreeMonthBid, true},
	"3_months_bid":         {seriesThreeMonthBid, false},
	"3-months_offer":       {seriesThreeMonthOffer, true},
	"3_months_offer":       {seriesThreeMonthOffer, false},
}

// Normalize reduces a raw chart response to one record per label, dates in
// ISO form. A series value missing at a label's index leaves that field
// nil; the record's Value is the cash bid, falling back to the three-month
// bid. A response without labels reports ErrNoUpstreamData.
func Normalize(resp Response, src pricefeed.Source) ([]pricefeed.Record, error) {
	if len(resp.Labels) == 0 {
		return nil, apperrors.ErrNoUpstreamData
	}

	series := make(map[string][]*float64, len(seriesAliases))
	primary := make(map[string]bool, len(seriesAliases))
	for _, ds := range resp.Datasets {
		key := strings.ReplaceAll(strings.ToLower(ds.RowTitle+"_"+ds.Label), " ", "_")
		alias, ok := seriesAliases[key]
		if !ok {
			continue
		}
		// first series seen wins, unless a primary alias arrives after a fallback
		if _, taken := series[alias.canonical]; taken {
			if !alias.primary || primary[alias.canonical] {
				continue
			}
		}
		series[alias.canonical] = ds.Data
		primary[alias.canonical] = alias.primary
	}

	records := make([]pricefeed.Record, 0, len(resp.Labels))
	for i, label := range resp.Labels {
		r := pricefeed.Record{
			Date:            pricefeed.NormalizeDate(label),
			CashBid:         seriesValue(series, seriesCashBid, i),
			CashOffer:       seriesValue(series, seriesCashOffer, i),
			ThreeMonthBid:   seriesValue(series, seriesThreeMonthBid, i),
			ThreeMonthOffer: seriesValue(series, seriesThreeMonthOffer, i),
			Source:          src.StoreSource,
		}
		r.Value = r.CashBid
		if r.Value == nil {
			r.Value = r.ThreeMonthBid
		}
		records = append(records, r)
	}

	return records, nil
}

// seriesValue returns the i-th value of a canonical series, nil when the
// series is absent or shorter than the label axis.
func seriesValue(series map[string][]*float64, name string, i int) *float64 {
	data, ok := series[name]
	if !ok || i >= len(data) {
		return nil
	}
	return data[i]
}
