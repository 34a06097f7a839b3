// Package display detects the local screen size.
package display

import (
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// NewScreenResolution detects the primary screen resolution at startup.
// It returns nil on headless hosts, which disables the minimum-resolution search filter.
func NewScreenResolution(logger *zap.Logger) *domain.ScreenResolution {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Warn("No active displays detected, minimum resolution filter disabled")
		return nil
	}

	// Use primary monitor (index 0)
	bounds := screenshot.GetDisplayBounds(0)
	return FromBounds(logger, bounds.Dx(), bounds.Dy())
}

// FromBounds validates detected display dimensions
func FromBounds(logger *zap.Logger, width, height int) *domain.ScreenResolution {
	if width <= 0 || height <= 0 {
		logger.Warn("Invalid display bounds, minimum resolution filter disabled",
			zap.Int("width", width),
			zap.Int("height", height))
		return nil
	}

	res := &domain.ScreenResolution{Width: width, Height: height}
	logger.Info("Screen resolution detected",
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))
	return res
}
