package service

import (
	"strings"
	"time"

	"github.com/ndtduy/commodity-data-backend/internal/model"
	"github.com/ndtduy/commodity-data-backend/internal/repository"
)

// PriceService handles read-side queries over stored commodity prices.
type PriceService struct {
	priceRepo *repository.PriceRepository
}

// NewPriceService creates a new PriceService with the provided repository.
func NewPriceService(priceRepo *repository.PriceRepository) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
	}
}

// GetChartData merges stored prices into one point per date, each point
// carrying every commodity's value for that date keyed by lower-cased
// commodity code. A stored row without a usable value still claims its
// key, with a null value.
//
// Parameters:
//   - startDate: Inclusive lower bound in YYYY-MM-DD format
//
// Returns:
//   - model.ChartDataResponse: Points in ascending date order
//   - error: Database error if the query fails
func (s *PriceService) GetChartData(startDate string) (model.ChartDataResponse, error) {
	rows, err := s.priceRepo.GetPricesSince(startDate)
	if err != nil {
		return model.ChartDataResponse{}, err
	}

	// Rows arrive ordered by date, so first-seen order is ascending.
	points := []model.ChartPoint{}
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.PriceDate]
		if !ok {
			i = len(points)
			index[row.PriceDate] = i
			points = append(points, model.ChartPoint{
				Date:   row.PriceDate,
				Values: make(map[string]*float64),
			})
		}
		points[i].Values[strings.ToLower(row.Code)] = row.PriceValue
	}

	return model.ChartDataResponse{
		Success:  true,
		Data:     points,
		Count:    len(points),
		LoadedAt: time.Now().UTC(),
	}, nil
}

// GetLatestPrices returns the most recent stored price per commodity.
func (s *PriceService) GetLatestPrices() (model.LatestPricesResponse, error) {
	prices, err := s.priceRepo.GetLatestPrices()
	if err != nil {
		return model.LatestPricesResponse{}, err
	}

	return model.LatestPricesResponse{
		Success:  true,
		Data:     prices,
		Count:    len(prices),
		LoadedAt: time.Now().UTC(),
	}, nil
}

// GetSummary returns per-commodity coverage: row counts and the stored
// date range, for every commodity that has at least one price.
func (s *PriceService) GetSummary() (model.SummaryResponse, error) {
	summaries, err := s.priceRepo.GetSummary()
	if err != nil {
		return model.SummaryResponse{}, err
	}

	return model.SummaryResponse{
		Success: true,
		Summary: model.SummaryPayload{
			TotalCommodities: len(summaries),
			Commodities:      summaries,
		},
		LoadedAt: time.Now().UTC(),
	}, nil
}
