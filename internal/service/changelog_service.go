package service

import (
	"context"

	"github.com/ndtduy/commodity-data-backend/internal/api/request"
	"github.com/ndtduy/commodity-data-backend/internal/model"
	"github.com/ndtduy/commodity-data-backend/internal/repository"
)

// ChangeLogService handles manual change log entries recorded against the
// dataset, such as backfills or corrections.
type ChangeLogService struct {
	changeLogRepo *repository.ChangeLogRepository
}

// NewChangeLogService creates a new ChangeLogService with the provided repository.
func NewChangeLogService(changeLogRepo *repository.ChangeLogRepository) *ChangeLogService {
	return &ChangeLogService{
		changeLogRepo: changeLogRepo,
	}
}

// CreateChangeLog stores one change log entry. A nil details slice is
// stored as an empty list.
func (s *ChangeLogService) CreateChangeLog(ctx context.Context, req request.CreateChangeLogRequest) error {
	entry := model.ChangeLogEntry{
		Summary: req.Summary,
		Details: req.Details,
	}

	return s.changeLogRepo.Insert(ctx, entry)
}

// GetChangeLogs returns the most recent change log entries, newest first.
func (s *ChangeLogService) GetChangeLogs(limit int) ([]model.ChangeLogEntry, error) {
	return s.changeLogRepo.ListRecent(limit)
}
