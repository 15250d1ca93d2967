package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/excel"
	"github.com/ndtduy/commodity-data-backend/internal/filecache"
	"github.com/ndtduy/commodity-data-backend/internal/lme"
	"github.com/ndtduy/commodity-data-backend/internal/model"
	"github.com/ndtduy/commodity-data-backend/internal/oilprice"
	"github.com/ndtduy/commodity-data-backend/internal/pricefeed"
	"github.com/ndtduy/commodity-data-backend/internal/repository"
)

// FetchService orchestrates the fetch pipeline: drive a headless browser
// against an upstream source, normalize the payload, upsert the prices,
// record a provenance row and refresh the snapshot cache.
type FetchService struct {
	commodityRepo *repository.CommodityRepository
	priceRepo     *repository.PriceRepository
	fetchLogRepo  *repository.FetchLogRepository
	lmeClient     lme.Client
	oilClient     oilprice.Client
	cache         *filecache.Cache
	startDate     string
	logger        *zap.Logger

	group singleflight.Group
}

// NewFetchService creates a new FetchService with the provided dependencies.
// startDate is the inclusive lower bound (YYYY-MM-DD) for both upstream
// queries and persisted rows.
func NewFetchService(
	commodityRepo *repository.CommodityRepository,
	priceRepo *repository.PriceRepository,
	fetchLogRepo *repository.FetchLogRepository,
	lmeClient lme.Client,
	oilClient oilprice.Client,
	cache *filecache.Cache,
	startDate string,
	logger *zap.Logger,
) *FetchService {
	return &FetchService{
		commodityRepo: commodityRepo,
		priceRepo:     priceRepo,
		fetchLogRepo:  fetchLogRepo,
		lmeClient:     lmeClient,
		oilClient:     oilClient,
		cache:         cache,
		startDate:     startDate,
		logger:        logger,
	}
}

// FetchSource runs the full fetch pipeline for one source key.
//
// Concurrent requests for the same key share a single in-flight run.
// The run is detached from the caller's context so that an aborted
// request cannot kill a browser session other callers are waiting on.
//
// Parameters:
//   - ctx: Context for the request
//   - key: Source key ("copper", "zinc", "oil")
//
// Returns:
//   - model.FetchResult: Chart records plus persistence outcome
//   - error: apperrors.ErrUnknownSource for unregistered keys, otherwise
//     the fetch or normalization failure
func (s *FetchService) FetchSource(ctx context.Context, key string) (model.FetchResult, error) {
	src, err := pricefeed.LookupSource(key)
	if err != nil {
		return model.FetchResult{}, err
	}

	result, err, _ := s.group.Do(src.Key, func() (interface{}, error) {
		return s.runPipeline(context.WithoutCancel(ctx), src)
	})
	if err != nil {
		return model.FetchResult{}, err
	}

	return result.(model.FetchResult), nil
}

// runPipeline executes one fetch for a resolved source. It is only ever
// invoked through the singleflight group.
func (s *FetchService) runPipeline(ctx context.Context, src pricefeed.Source) (model.FetchResult, error) {
	start := time.Now()

	records, err := s.fetchRecords(ctx, src)
	if err != nil {
		s.logger.Error("fetch failed",
			zap.String("source", src.Key),
			zap.Error(err),
		)
		s.recordFetch(ctx, src, model.FetchStatusFailure, 0, err, elapsedMS(start))
		return model.FetchResult{}, err
	}

	// Duration covers fetch and parse only, not persistence.
	duration := elapsedMS(start)

	chartData := make([]model.ChartRecord, len(records))
	for i, rec := range records {
		chartData[i] = model.ChartRecord{Date: rec.Date, Value: rec.Value, Source: src.Name}
	}

	saved, saveErr := s.savePrices(ctx, src, pricefeed.Dedupe(records, s.startDate))
	if saveErr != nil {
		s.logger.Error("failed to save prices",
			zap.String("source", src.Key),
			zap.Error(saveErr),
		)
		s.recordFetch(ctx, src, model.FetchStatusPartial, 0, saveErr, duration)
	} else {
		s.recordFetch(ctx, src, model.FetchStatusSuccess, saved, nil, duration)
	}

	result := model.FetchResult{
		Source:    src.Key,
		Name:      src.Name,
		Data:      chartData,
		FetchedAt: time.Now().UTC(),
		SavedToDB: saved,
	}

	if err := s.cache.Write(src.Key, result); err != nil {
		s.logger.Warn("failed to write snapshot cache",
			zap.String("source", src.Key),
			zap.Error(err),
		)
	}

	s.logger.Info("fetch completed",
		zap.String("source", src.Key),
		zap.Int("records", len(chartData)),
		zap.Int64("saved", saved),
		zap.Int64("duration_ms", duration),
	)

	return result, nil
}

// fetchRecords dispatches on the source kind once and returns the
// normalized record sequence for it.
func (s *FetchService) fetchRecords(ctx context.Context, src pricefeed.Source) ([]pricefeed.Record, error) {
	switch src.Kind {
	case pricefeed.KindLME:
		resp, err := s.lmeClient.FetchChartData(ctx, src, s.startDate, today())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chart data: %w", err)
		}
		return lme.Normalize(resp, src)
	case pricefeed.KindOilPrice:
		resp, err := s.oilClient.FetchPrices(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch oil prices: %w", err)
		}
		return oilprice.Normalize(resp, src, s.startDate), nil
	default:
		return nil, fmt.Errorf("%w: unhandled source kind %q", apperrors.ErrUnknownSource, src.Kind)
	}
}

// savePrices resolves the commodity for the source and applies the batch.
// An unregistered commodity code rejects the whole batch: zero rows, no
// error, matching how the store treats writes against unknown commodities.
func (s *FetchService) savePrices(ctx context.Context, src pricefeed.Source, records []pricefeed.Record) (int64, error) {
	commodity, err := s.commodityRepo.GetByCode(src.Code)
	if errors.Is(err, apperrors.ErrCommodityNotFound) {
		s.logger.Warn("commodity not registered, batch skipped",
			zap.String("code", src.Code),
		)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	prices := make([]model.CommodityPrice, len(records))
	for i, rec := range records {
		prices[i] = model.CommodityPrice{
			CommodityID:     commodity.ID,
			PriceDate:       rec.Date,
			PriceValue:      rec.Value,
			CashBid:         rec.CashBid,
			CashOffer:       rec.CashOffer,
			ThreeMonthBid:   rec.ThreeMonthBid,
			ThreeMonthOffer: rec.ThreeMonthOffer,
			Source:          rec.Source,
		}
	}

	return s.priceRepo.UpsertPrices(ctx, prices)
}

// recordFetch appends a provenance row for one pipeline run. It never
// fails the caller: a provenance write error must not turn an otherwise
// successful fetch into a failure, so it is logged and swallowed.
func (s *FetchService) recordFetch(ctx context.Context, src pricefeed.Source, status string, records int64, cause error, durationMS int64) {
	entry := model.FetchLog{
		Status:         status,
		RecordsFetched: records,
		DurationMS:     durationMS,
	}

	if cause != nil {
		msg := cause.Error()
		entry.ErrorMessage = &msg
	}

	// Best effort: a missing commodity row leaves the reference null.
	if commodity, err := s.commodityRepo.GetByCode(src.Code); err == nil {
		entry.CommodityID = &commodity.ID
	}

	if err := s.fetchLogRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to record fetch attempt",
			zap.String("source", src.Key),
			zap.Error(err),
		)
	}
}

// FetchWorkbook fetches a source live and renders the raw upstream payload
// as a downloadable spreadsheet. Nothing is persisted on this path.
//
// Parameters:
//   - ctx: Context for the request
//   - key: Source key ("copper", "zinc", "oil")
//
// Returns:
//   - model.Workbook: Filename plus serialized workbook bytes
//   - error: apperrors.ErrUnknownSource, apperrors.ErrNoUpstreamData or
//     the fetch failure
func (s *FetchService) FetchWorkbook(ctx context.Context, key string) (model.Workbook, error) {
	src, err := pricefeed.LookupSource(key)
	if err != nil {
		return model.Workbook{}, err
	}

	switch src.Kind {
	case pricefeed.KindLME:
		resp, err := s.lmeClient.FetchChartData(ctx, src, s.startDate, today())
		if err != nil {
			return model.Workbook{}, fmt.Errorf("failed to fetch chart data: %w", err)
		}
		return excel.BuildLMEWorkbook(resp, src.Name)
	case pricefeed.KindOilPrice:
		resp, err := s.oilClient.FetchPrices(ctx, src)
		if err != nil {
			return model.Workbook{}, fmt.Errorf("failed to fetch oil prices: %w", err)
		}
		return excel.BuildOilWorkbook(resp)
	default:
		return model.Workbook{}, fmt.Errorf("%w: unhandled source kind %q", apperrors.ErrUnknownSource, src.Kind)
	}
}

// CachedData returns the latest snapshot for a source without touching any
// upstream. The raw file bytes are returned as-is; they were written by a
// previous successful fetch.
func (s *FetchService) CachedData(key string) ([]byte, error) {
	if _, err := pricefeed.LookupSource(key); err != nil {
		return nil, err
	}
	return s.cache.Read(key)
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
