// Package filecache persists fetch results as JSON snapshot files, one
// timestamped archive plus a rolling "latest" file per source.
package filecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
)

// Cache writes and reads per-source JSON snapshots under a single directory.
type Cache struct {
	dir string
}

// New creates the snapshot directory if needed and returns a cache rooted there.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Write stores payload both as a timestamped archive file and as the
// source's rolling latest snapshot.
func (c *Cache) Write(sourceKey string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	stamped := filepath.Join(c.dir, fmt.Sprintf("%s_%s.json", sourceKey, time.Now().Format("20060102_150405")))
	if err := os.WriteFile(stamped, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", stamped, err)
	}

	latest := filepath.Join(c.dir, sourceKey+"_latest.json")
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write latest snapshot %s: %w", latest, err)
	}

	return nil
}

// Read returns the source's latest snapshot bytes. A missing snapshot
// reports ErrSnapshotNotFound, distinct from any other read failure.
func (c *Cache) Read(sourceKey string) ([]byte, error) {
	latest := filepath.Join(c.dir, sourceKey+"_latest.json")

	data, err := os.ReadFile(latest)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSnapshotNotFound, sourceKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", latest, err)
	}

	return data, nil
}
