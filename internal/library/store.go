// Package library keeps the user's wallpaper collection and the current
// wallpaper in the durable store. Every call reads or writes through the
// persistence adapter; nothing is cached in memory, because other execution
// contexts write the same keys.
package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/storage"
	"go.uber.org/zap"
)

// Store implements domain.Library on top of the persistence adapter
type Store struct {
	logger  *zap.Logger
	adapter *storage.Adapter
	now     func() time.Time
}

// NewStore creates a library store
func NewStore(logger *zap.Logger, adapter *storage.Adapter) *Store {
	return &Store{
		logger:  logger,
		adapter: adapter,
		now:     time.Now,
	}
}

// Add inserts w at the front of the library unless its id is already present
func (s *Store) Add(ctx context.Context, w domain.Wallpaper) (bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(items, w.ID) >= 0 {
		s.logger.Debug("Wallpaper already in library", zap.String("id", w.ID))
		return false, nil
	}

	if w.AddedAt == nil {
		now := s.now().UTC()
		w.AddedAt = &now
	}

	err = s.adapter.WriteDegradable(ctx, storage.KeyLibrary, func(degraded bool) (any, error) {
		item := w
		if degraded {
			item = w.Degraded()
		}
		next := make([]domain.Wallpaper, 0, len(items)+1)
		next = append(next, item)
		return append(next, items...), nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to add %s to library: %w", w.ID, err)
	}

	s.logger.Info("Wallpaper added to library", zap.String("id", w.ID), zap.Int("size", len(items)+1))
	return true, nil
}

// Remove deletes the item with the given id. It returns domain.ErrNotFound when absent.
func (s *Store) Remove(ctx context.Context, id string) (domain.Wallpaper, error) {
	items, err := s.List(ctx)
	if err != nil {
		return domain.Wallpaper{}, err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return domain.Wallpaper{}, fmt.Errorf("remove %s: %w", id, domain.ErrNotFound)
	}

	removed := items[idx]
	remaining := make([]domain.Wallpaper, 0, len(items)-1)
	remaining = append(remaining, items[:idx]...)
	remaining = append(remaining, items[idx+1:]...)

	if err := s.adapter.Write(ctx, storage.KeyLibrary, remaining); err != nil {
		return domain.Wallpaper{}, fmt.Errorf("failed to remove %s from library: %w", id, err)
	}

	s.logger.Info("Wallpaper removed from library", zap.String("id", id), zap.Int("size", len(remaining)))
	return removed, nil
}

// List returns the library with duplicate ids removed, keeping the first
// occurrence. If duplicates were found the corrected list is written back.
func (s *Store) List(ctx context.Context) ([]domain.Wallpaper, error) {
	var items []domain.Wallpaper
	if _, err := s.adapter.Read(ctx, storage.KeyLibrary, &items); err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	deduped := dedupe(items)
	if len(deduped) != len(items) {
		s.logger.Warn("Duplicate library entries found, repairing",
			zap.Int("before", len(items)),
			zap.Int("after", len(deduped)))
		if err := s.adapter.Write(ctx, storage.KeyLibrary, deduped); err != nil {
			// The de-duplicated view is still correct; the next read retries the repair
			s.logger.Error("Failed to persist repaired library", zap.Error(err))
		}
	}

	return deduped, nil
}

// Get returns the library item with the given id
func (s *Store) Get(ctx context.Context, id string) (domain.Wallpaper, error) {
	items, err := s.List(ctx)
	if err != nil {
		return domain.Wallpaper{}, err
	}
	if idx := indexOf(items, id); idx >= 0 {
		return items[idx], nil
	}
	return domain.Wallpaper{}, fmt.Errorf("get %s: %w", id, domain.ErrNotFound)
}

// GetCurrent returns the current wallpaper, or nil if none is stored
func (s *Store) GetCurrent(ctx context.Context) (*domain.Wallpaper, error) {
	var w domain.Wallpaper
	found, err := s.adapter.Read(ctx, storage.KeyCurrentWallpaper, &w)
	if err != nil {
		return nil, fmt.Errorf("failed to read current wallpaper: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &w, nil
}

// SetCurrent persists w as the current wallpaper. Local uploads are added to
// the library first so the current wallpaper can always be found there.
func (s *Store) SetCurrent(ctx context.Context, w domain.Wallpaper) error {
	if w.IsLocalUpload() {
		if _, err := s.Add(ctx, w); err != nil {
			return err
		}
	}

	if err := s.adapter.WriteWallpaper(ctx, storage.KeyCurrentWallpaper, w); err != nil {
		return fmt.Errorf("failed to set current wallpaper: %w", err)
	}

	s.logger.Info("Current wallpaper set",
		zap.String("id", w.ID),
		zap.String("sourceType", string(w.SourceType)))
	return nil
}

// Settings returns the persisted settings, or defaults when none were saved
func (s *Store) Settings(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if _, err := s.adapter.Read(ctx, storage.KeySettings, &settings); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("failed to read settings: %w", err)
	}
	return settings.Normalize(), nil
}

// SaveSettings replaces the persisted settings
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return s.adapter.Write(ctx, storage.KeySettings, settings.Normalize())
}

// ShuffleState returns the scheduler bookkeeping written by the background context
func (s *Store) ShuffleState(ctx context.Context) (enabled bool, interval int, err error) {
	if _, err = s.adapter.Read(ctx, storage.KeyIsShuffleEnabled, &enabled); err != nil {
		return false, 0, err
	}
	if _, err = s.adapter.Read(ctx, storage.KeyShuffleInterval, &interval); err != nil {
		return false, 0, err
	}
	return enabled, interval, nil
}

// SaveShuffleState records the scheduler bookkeeping
func (s *Store) SaveShuffleState(ctx context.Context, enabled bool, interval int) error {
	if err := s.adapter.Write(ctx, storage.KeyIsShuffleEnabled, enabled); err != nil {
		return err
	}
	return s.adapter.Write(ctx, storage.KeyShuffleInterval, interval)
}

// LastShuffleTime returns when a shuffle last succeeded. ok is false if never.
func (s *Store) LastShuffleTime(ctx context.Context) (t time.Time, ok bool, err error) {
	var millis int64
	found, err := s.adapter.Read(ctx, storage.KeyLastShuffleTime, &millis)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	return time.UnixMilli(millis), true, nil
}

// TouchLastShuffle records t as the last successful shuffle
func (s *Store) TouchLastShuffle(ctx context.Context, t time.Time) error {
	return s.adapter.Write(ctx, storage.KeyLastShuffleTime, t.UnixMilli())
}

// IsNotFound reports whether err signals a missing library item
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func indexOf(items []domain.Wallpaper, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func dedupe(items []domain.Wallpaper) []domain.Wallpaper {
	seen := make(map[string]bool, len(items))
	out := make([]domain.Wallpaper, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}
