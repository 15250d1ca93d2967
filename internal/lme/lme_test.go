package lme_test

import (
	"errors"
	"testing"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/lme"
	"github.com/ndtduy/commodity-data-backend/internal/pricefeed"
)

func floatPtr(v float64) *float64 { return &v }

func testSource() pricefeed.Source {
	return pricefeed.Source{Key: "copper", Kind: pricefeed.KindLME, Name: "Copper", Code: "COPPER", StoreSource: "LME"}
}

func TestNormalize(t *testing.T) {
	t.Run("maps labels and all four series to records", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023", "02/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Cash", Label: "Bid", Data: []*float64{floatPtr(100), floatPtr(110)}},
				{RowTitle: "Cash", Label: "Offer", Data: []*float64{floatPtr(101), floatPtr(111)}},
				{RowTitle: "3-months", Label: "Bid", Data: []*float64{floatPtr(105), floatPtr(115)}},
				{RowTitle: "3-months", Label: "Offer", Data: []*float64{floatPtr(106), floatPtr(116)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}

		first := records[0]
		if first.Date != "2023-01-01" {
			t.Errorf("Expected date 2023-01-01, got %q", first.Date)
		}
		if first.Value == nil || *first.Value != 100 {
			t.Errorf("Expected value 100, got %v", first.Value)
		}
		if first.CashBid == nil || *first.CashBid != 100 {
			t.Errorf("Expected cash bid 100, got %v", first.CashBid)
		}
		if first.CashOffer == nil || *first.CashOffer != 101 {
			t.Errorf("Expected cash offer 101, got %v", first.CashOffer)
		}
		if first.ThreeMonthBid == nil || *first.ThreeMonthBid != 105 {
			t.Errorf("Expected three-month bid 105, got %v", first.ThreeMonthBid)
		}
		if first.ThreeMonthOffer == nil || *first.ThreeMonthOffer != 106 {
			t.Errorf("Expected three-month offer 106, got %v", first.ThreeMonthOffer)
		}
		if first.Source != "LME" {
			t.Errorf("Expected source LME, got %q", first.Source)
		}

		second := records[1]
		if second.Date != "2023-01-02" {
			t.Errorf("Expected date 2023-01-02, got %q", second.Date)
		}
		if second.Value == nil || *second.Value != 110 {
			t.Errorf("Expected value 110, got %v", second.Value)
		}
	})

	t.Run("value falls back to three-month bid when cash bid is missing", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "3-months", Label: "Bid", Data: []*float64{floatPtr(105)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].Value == nil || *records[0].Value != 105 {
			t.Errorf("Expected value to fall back to 105, got %v", records[0].Value)
		}
		if records[0].CashBid != nil {
			t.Errorf("Expected no cash bid, got %v", *records[0].CashBid)
		}
	})

	t.Run("value stays nil when both bids are missing", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Cash", Label: "Offer", Data: []*float64{floatPtr(101)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].Value != nil {
			t.Errorf("Expected nil value, got %v", *records[0].Value)
		}
	})

	t.Run("official price series fills the cash slot", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Official price", Label: "Bid", Data: []*float64{floatPtr(200)}},
				{RowTitle: "Official price", Label: "Offer", Data: []*float64{floatPtr(201)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].CashBid == nil || *records[0].CashBid != 200 {
			t.Errorf("Expected official bid in cash slot, got %v", records[0].CashBid)
		}
		if records[0].CashOffer == nil || *records[0].CashOffer != 201 {
			t.Errorf("Expected official offer in cash slot, got %v", records[0].CashOffer)
		}
	})

	t.Run("cash series wins over official price regardless of order", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Official price", Label: "Bid", Data: []*float64{floatPtr(200)}},
				{RowTitle: "Cash", Label: "Bid", Data: []*float64{floatPtr(100)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].CashBid == nil || *records[0].CashBid != 100 {
			t.Errorf("Expected cash bid 100 to win, got %v", records[0].CashBid)
		}

		// Same payload with the primary series first.
		resp.Datasets[0], resp.Datasets[1] = resp.Datasets[1], resp.Datasets[0]

		records, err = lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].CashBid == nil || *records[0].CashBid != 100 {
			t.Errorf("Expected cash bid 100 to win when listed first, got %v", records[0].CashBid)
		}
	})

	t.Run("3 months spelling with a space is recognized", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "3 months", Label: "Bid", Data: []*float64{floatPtr(105)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].ThreeMonthBid == nil || *records[0].ThreeMonthBid != 105 {
			t.Errorf("Expected three-month bid 105, got %v", records[0].ThreeMonthBid)
		}
	})

	t.Run("series shorter than the label axis leaves trailing fields nil", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023", "02/01/2023", "03/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Cash", Label: "Bid", Data: []*float64{floatPtr(100)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(records))
		}

		if records[0].CashBid == nil {
			t.Error("Expected first record to carry the cash bid")
		}
		if records[1].CashBid != nil || records[2].CashBid != nil {
			t.Error("Expected records beyond the series length to have nil cash bid")
		}
	})

	t.Run("null inside a series stays nil on that record", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023", "02/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Cash", Label: "Bid", Data: []*float64{nil, floatPtr(110)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].CashBid != nil {
			t.Errorf("Expected nil cash bid on first record, got %v", *records[0].CashBid)
		}
		if records[1].CashBid == nil || *records[1].CashBid != 110 {
			t.Errorf("Expected cash bid 110 on second record, got %v", records[1].CashBid)
		}
	})

	t.Run("unrecognized series are ignored", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"01/01/2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Stocks", Label: "Total", Data: []*float64{floatPtr(99999)}},
				{RowTitle: "Cash", Label: "Bid", Data: []*float64{floatPtr(100)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].CashBid == nil || *records[0].CashBid != 100 {
			t.Errorf("Expected cash bid 100, got %v", records[0].CashBid)
		}
		if records[0].Value == nil || *records[0].Value != 100 {
			t.Errorf("Expected stock series to be ignored, value 100, got %v", records[0].Value)
		}
	})

	t.Run("empty label axis returns ErrNoUpstreamData", func(t *testing.T) {
		resp := lme.Response{
			Datasets: []lme.Dataset{
				{RowTitle: "Cash", Label: "Bid", Data: []*float64{floatPtr(100)}},
			},
		}

		_, err := lme.Normalize(resp, testSource())
		if err == nil {
			t.Fatal("Expected error for empty label axis, got nil")
		}

		if !errors.Is(err, apperrors.ErrNoUpstreamData) {
			t.Errorf("Expected ErrNoUpstreamData, got %v", err)
		}
	})

	t.Run("unparsable label is carried through unchanged", func(t *testing.T) {
		resp := lme.Response{
			Labels: []string{"W52 2023"},
			Datasets: []lme.Dataset{
				{RowTitle: "Cash", Label: "Bid", Data: []*float64{floatPtr(100)}},
			},
		}

		records, err := lme.Normalize(resp, testSource())
		if err != nil {
			t.Fatalf("Normalize returned unexpected error: %v", err)
		}

		if records[0].Date != "W52 2023" {
			t.Errorf("Expected raw label to pass through, got %q", records[0].Date)
		}
	})
}
