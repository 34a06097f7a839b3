// Package shuffle decides which wallpaper becomes current next.
package shuffle

import (
	"math/rand/v2"
	"strings"

	"github.com/genricoloni/wallsync/internal/domain"
)

// Options overrides the persisted settings for a single shuffle.
// Zero values fall back to the settings.
type Options struct {
	Source     domain.RefreshSource
	NsfwFilter domain.NsfwFilter
}

// Resolve returns the effective source and content filter
func (o Options) Resolve(s domain.Settings) (domain.RefreshSource, domain.NsfwFilter) {
	source := s.RefreshSource
	if o.Source.Valid() {
		source = o.Source
	}
	filter := s.RefreshNsfwFilter
	if o.NsfwFilter.Valid() {
		filter = o.NsfwFilter
	}
	return source, filter
}

var unsafeMarkers = map[string]bool{
	"nsfw":    true,
	"sketchy": true,
	"unsafe":  true,
}

// IsUnsafe reports whether tags or the provider rating mark w as unsafe
func IsUnsafe(w domain.Wallpaper) bool {
	if unsafeMarkers[strings.ToLower(w.Info.Purity)] {
		return true
	}
	for _, tag := range w.Info.Tags {
		if unsafeMarkers[strings.ToLower(strings.TrimSpace(tag))] {
			return true
		}
	}
	return false
}

// FilterByRating narrows library candidates by content rating.
//
// Only NsfwOnly filters. NsfwOff keeps everything because items reach the
// library through searches that were already restricted to safe content.
func FilterByRating(items []domain.Wallpaper, filter domain.NsfwFilter) []domain.Wallpaper {
	if filter != domain.NsfwOnly {
		return items
	}
	out := make([]domain.Wallpaper, 0, len(items))
	for _, item := range items {
		if IsUnsafe(item) {
			out = append(out, item)
		}
	}
	return out
}

// Select applies the selection policy to a gathered pool.
// For the library source the pool is the whole library and is filtered here;
// provider results arrive pre-filtered.
func Select(source domain.RefreshSource, filter domain.NsfwFilter, pool []domain.Wallpaper, current *domain.Wallpaper, rng *rand.Rand) (domain.Wallpaper, error) {
	candidates := pool
	switch source {
	case domain.SourceBrowse:
		if len(candidates) == 0 {
			return domain.Wallpaper{}, domain.ErrNoResultsAvailable
		}
	default:
		if len(pool) == 0 {
			return domain.Wallpaper{}, domain.ErrEmptyLibrary
		}
		candidates = FilterByRating(pool, filter)
		if len(candidates) == 0 {
			return domain.Wallpaper{}, domain.ErrNoMatchingContent
		}
	}
	return Pick(candidates, current, rng), nil
}

// Pick chooses uniformly from a non-empty pool. It retries up to len(pool)
// times while the choice equals current, then steps to the next element, so
// a pool of two or more distinct ids never repeats current.
func Pick(pool []domain.Wallpaper, current *domain.Wallpaper, rng *rand.Rand) domain.Wallpaper {
	n := len(pool)
	i := intN(rng, n)
	if n == 1 || current == nil {
		return pool[i]
	}
	for attempt := 0; attempt < n && pool[i].ID == current.ID; attempt++ {
		i = intN(rng, n)
	}
	for step := 0; step < n && pool[i].ID == current.ID; step++ {
		i = (i + 1) % n
	}
	return pool[i]
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
