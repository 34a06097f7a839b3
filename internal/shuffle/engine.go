package shuffle

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/metrics"
	"go.uber.org/zap"
)

// Engine runs shuffles against the library and the remote provider.
// Shuffles are serialized within one process.
type Engine struct {
	logger   *zap.Logger
	library  domain.Library
	provider domain.Provider

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates a shuffle engine
func NewEngine(logger *zap.Logger, library domain.Library, provider domain.Provider) *Engine {
	return &Engine{
		logger:   logger,
		library:  library,
		provider: provider,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand replaces the random source
func (e *Engine) WithRand(rng *rand.Rand) *Engine {
	e.rng = rng
	return e
}

// Shuffle picks a new wallpaper and persists it as current
func (e *Engine) Shuffle(ctx context.Context, opts Options) (domain.Wallpaper, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	settings, err := e.library.Settings(ctx)
	if err != nil {
		return domain.Wallpaper{}, err
	}
	source, filter := opts.Resolve(settings)

	current := e.current(ctx)

	var pool []domain.Wallpaper
	switch source {
	case domain.SourceBrowse:
		pool = e.search(ctx, filter).Items
	default:
		if pool, err = e.library.List(ctx); err != nil {
			metrics.RecordShuffle(string(source), "error")
			return domain.Wallpaper{}, err
		}
	}

	choice, err := Select(source, filter, pool, current, e.rng)
	if err != nil {
		metrics.RecordShuffle(string(source), outcome(err))
		e.logger.Info("Shuffle found nothing to show",
			zap.String("source", string(source)),
			zap.String("nsfwFilter", string(filter)),
			zap.Error(err))
		return domain.Wallpaper{}, err
	}

	// Browse results become current only; adding them to the library is a separate action
	if err := e.library.SetCurrent(ctx, choice); err != nil {
		metrics.RecordShuffle(string(source), "error")
		return domain.Wallpaper{}, err
	}

	metrics.RecordShuffle(string(source), "success")
	e.logger.Info("Wallpaper shuffled",
		zap.String("id", choice.ID),
		zap.String("source", string(source)),
		zap.Int("pool", len(pool)))
	return choice, nil
}

// RemoveFromLibrary deletes id from the library. When it was the current
// wallpaper a replacement is drawn from the remaining library, or from the
// provider when the library is now empty. A removed upload with nothing to
// replace it gives way to domain.DefaultWallpaper. The replacement is nil if
// current was not affected or a remote current could not be replaced.
func (e *Engine) RemoveFromLibrary(ctx context.Context, id string) (domain.Wallpaper, *domain.Wallpaper, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.current(ctx)

	removed, err := e.library.Remove(ctx, id)
	if err != nil {
		return domain.Wallpaper{}, nil, err
	}
	if current == nil || current.ID != id {
		return removed, nil, nil
	}

	replacement, err := e.replacement(ctx, current)
	if err != nil {
		return removed, nil, err
	}
	if replacement == nil {
		if !current.IsLocalUpload() {
			e.logger.Warn("No replacement available for removed current wallpaper", zap.String("id", id))
			return removed, nil, nil
		}
		// An upload must not stay current once it left the library
		e.logger.Warn("No replacement available, falling back to the default wallpaper", zap.String("id", id))
		fallback := domain.DefaultWallpaper
		replacement = &fallback
	}

	if err := e.library.SetCurrent(ctx, *replacement); err != nil {
		return removed, nil, fmt.Errorf("failed to replace current wallpaper: %w", err)
	}

	e.logger.Info("Replaced removed current wallpaper",
		zap.String("removed", id),
		zap.String("replacement", replacement.ID))
	return removed, replacement, nil
}

// AddToLibrary adds w to the library
func (e *Engine) AddToLibrary(ctx context.Context, w domain.Wallpaper) (bool, error) {
	return e.library.Add(ctx, w)
}

// SetCurrent persists w as the current wallpaper
func (e *Engine) SetCurrent(ctx context.Context, w domain.Wallpaper) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.library.SetCurrent(ctx, w)
}

func (e *Engine) replacement(ctx context.Context, current *domain.Wallpaper) (*domain.Wallpaper, error) {
	remaining, err := e.library.List(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := e.library.Settings(ctx)
	if err != nil {
		settings = domain.DefaultSettings()
	}

	if len(remaining) > 0 {
		pool := FilterByRating(remaining, settings.RefreshNsfwFilter)
		if len(pool) == 0 {
			pool = remaining
		}
		choice := Pick(pool, current, e.rng)
		return &choice, nil
	}

	result := e.search(ctx, settings.RefreshNsfwFilter)
	if result.Empty() {
		return nil, nil
	}
	choice := Pick(result.Items, current, e.rng)
	return &choice, nil
}

func (e *Engine) search(ctx context.Context, filter domain.NsfwFilter) domain.SearchResult {
	return e.provider.Search(ctx, domain.SearchQuery{
		Page: 1,
		Filters: domain.SearchFilters{
			Categories: domain.AllCategories(),
			Nsfw:       filter,
		},
	})
}

// current is only used for repeat avoidance, so a read failure is not fatal
func (e *Engine) current(ctx context.Context) *domain.Wallpaper {
	current, err := e.library.GetCurrent(ctx)
	if err != nil {
		e.logger.Warn("Could not read current wallpaper", zap.Error(err))
		return nil
	}
	return current
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyLibrary):
		return "empty_library"
	case errors.Is(err, domain.ErrNoMatchingContent):
		return "no_match"
	case errors.Is(err, domain.ErrNoResultsAvailable):
		return "no_results"
	default:
		return "error"
	}
}
