package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/metrics"
	"go.uber.org/zap"
)

// Adapter wraps the durable key-value area with encoding, compression,
// a byte quota and the degrade-on-quota retry for wallpaper records.
// Writes are last-writer-wins per key; nothing spans multiple keys.
type Adapter struct {
	logger  *zap.Logger
	backend Backend
	codec   *Codec
	quota   int64
}

// NewAdapter creates a persistence adapter
func NewAdapter(logger *zap.Logger, backend Backend, codec *Codec, quotaBytes int64) *Adapter {
	return &Adapter{
		logger:  logger,
		backend: backend,
		codec:   codec,
		quota:   quotaBytes,
	}
}

// Read decodes the value under key into out. It reports false when the key is absent.
func (a *Adapter) Read(ctx context.Context, key string, out any) (bool, error) {
	data, err := a.backend.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := a.codec.Decode(data, out); err != nil {
		return false, fmt.Errorf("corrupt value under %s: %w", key, err)
	}
	return true, nil
}

// Write stores value under key. It returns an error wrapping
// domain.ErrQuotaExceeded when the value does not fit.
func (a *Adapter) Write(ctx context.Context, key string, value any) error {
	data, err := a.codec.Encode(value)
	if err != nil {
		return err
	}
	if err := a.checkQuota(ctx, key, int64(len(data))); err != nil {
		return err
	}
	return a.backend.Set(ctx, key, data)
}

// WriteDegradable writes the value produced by build(false). If that exceeds the
// quota, it writes build(true), the variant with full-resolution paths replaced by
// thumbnails, exactly once more. A second quota failure is returned as *domain.QuotaError.
func (a *Adapter) WriteDegradable(ctx context.Context, key string, build func(degraded bool) (any, error)) error {
	value, err := build(false)
	if err != nil {
		return err
	}

	err = a.Write(ctx, key, value)
	if err == nil || !errors.Is(err, domain.ErrQuotaExceeded) {
		return err
	}

	a.logger.Warn("Storage quota exceeded, retrying with thumbnail", zap.String("key", key))

	degraded, err := build(true)
	if err != nil {
		return err
	}
	if err := a.Write(ctx, key, degraded); err != nil {
		metrics.RecordDegradation(key, false)
		if errors.Is(err, domain.ErrQuotaExceeded) {
			a.logger.Error("Storage quota exceeded after degradation", zap.String("key", key))
			return &domain.QuotaError{Key: key, Err: err}
		}
		return err
	}

	metrics.RecordDegradation(key, true)
	a.logger.Info("Stored degraded wallpaper record", zap.String("key", key))
	return nil
}

// WriteWallpaper stores a single wallpaper record with quota degradation
func (a *Adapter) WriteWallpaper(ctx context.Context, key string, w domain.Wallpaper) error {
	return a.WriteDegradable(ctx, key, func(degraded bool) (any, error) {
		if degraded {
			return w.Degraded(), nil
		}
		return w, nil
	})
}

// Usage returns the number of bytes currently stored under tracked keys
func (a *Adapter) Usage(ctx context.Context) (int64, error) {
	sizes, err := a.backend.Sizes(ctx, TrackedKeys)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, n := range sizes {
		total += n
	}
	return total, nil
}

// checkQuota fails when replacing key with size bytes would exceed the budget.
// Writes that do not grow the stored value always pass.
func (a *Adapter) checkQuota(ctx context.Context, key string, size int64) error {
	if a.quota <= 0 {
		return nil
	}

	sizes, err := a.backend.Sizes(ctx, TrackedKeys)
	if err != nil {
		return err
	}

	// Shrinking a key never adds usage, so removals still work once over budget
	if existing, ok := sizes[key]; ok && size <= existing {
		return nil
	}

	var used int64
	for k, n := range sizes {
		if k != key {
			used += n
		}
	}

	if used+size > a.quota {
		return fmt.Errorf("writing %d bytes to %s with %d of %d bytes used: %w",
			size, key, used, a.quota, domain.ErrQuotaExceeded)
	}
	return nil
}
