package oilprice

import (
	"context"
	"fmt"
	"time"

	"github.com/ndtduy/commodity-data-backend/internal/browser"
	"github.com/ndtduy/commodity-data-backend/internal/pricefeed"
)

const (
	csrfURL   = "https://oilprice.com/ajax/csrf"
	pricesURL = "https://oilprice.com/freewidgets/json_get_oilprices"
)

// Client defines the interface for fetching oilprice.com widget data.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	FetchPrices(ctx context.Context, src pricefeed.Source) (Response, error)
}

// BrowserClient fetches oil prices through a real browser session. The
// widget endpoint requires a CSRF token that is only issued to page
// context, so both the token request and the price request run in-page.
type BrowserClient struct {
	engine browser.Engine
}

// NewBrowserClient creates an oilprice client on top of a browser engine.
func NewBrowserClient(engine browser.Engine) *BrowserClient {
	return &BrowserClient{engine: engine}
}

// FetchPrices loads oilprice.com, obtains a CSRF token and posts the
// widget query for the source's blend and period.
func (c *BrowserClient) FetchPrices(ctx context.Context, src pricefeed.Source) (Response, error) {
	page := browser.Page{
		URL:    src.PageURL,
		Settle: 2 * time.Second,
	}

	script := fmt.Sprintf(`(async () => {
		const csrfResponse = await fetch(%q, {
			method: 'GET',
			headers: {
				'accept': 'application/json, text/javascript, */*; q=0.01',
				'x-requested-with': 'XMLHttpRequest'
			}
		});
		if (!csrfResponse.ok) {
			throw new Error('CSRF fetch failed: ' + csrfResponse.status);
		}
		const csrfData = await csrfResponse.json();
		const csrf = csrfData.token || csrfData.csrf_token || csrfData;

		const response = await fetch(%q, {
			method: 'POST',
			headers: {
				'accept': 'application/json, text/javascript, */*; q=0.01',
				'content-type': 'application/x-www-form-urlencoded; charset=UTF-8',
				'x-requested-with': 'XMLHttpRequest'
			},
			body: 'blend_id=%d&period=%d&op_csrf_token=' + encodeURIComponent(csrf) + '&futures=1'
		});
		if (!response.ok) {
			throw new Error('HTTP ' + response.status + ': ' + response.statusText);
		}
		return await response.json();
	})()`, csrfURL, pricesURL, src.BlendID, src.Period)

	var resp Response
	if err := c.engine.FetchJSON(ctx, page, script, &resp); err != nil {
		return Response{}, fmt.Errorf("failed to fetch oil prices: %w", err)
	}

	return resp, nil
}

// Normalize reduces the raw price list to dated records. Timestamps are
// Unix seconds resolved to UTC calendar dates; entries with a missing or
// unparsable timestamp or price are dropped without failing the batch, as
// are entries dated strictly before the cutoff.
func Normalize(resp Response, src pricefeed.Source, cutoff string) []pricefeed.Record {
	records := make([]pricefeed.Record, 0, len(resp.Prices))

	for _, entry := range resp.Prices {
		ts, ok := entry.Time.Float64()
		if !ok {
			continue
		}
		price, ok := entry.Price.Float64()
		if !ok {
			continue
		}

		date := time.Unix(int64(ts), 0).UTC().Format("2006-01-02")
		if cutoff != "" && date < cutoff {
			continue
		}

		value := price
		records = append(records, pricefeed.Record{
			Date:   date,
			Value:  &value,
			Source: src.StoreSource,
		})
	}

	return records
}
