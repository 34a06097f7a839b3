// Package scheduler owns automatic shuffling in the background context and
// executes requests sent by foreground contexts.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/wallsync/internal/alarm"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/metrics"
	"github.com/genricoloni/wallsync/internal/shuffle"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ShuffleAlarm is the name of the recurring shuffle alarm
const ShuffleAlarm = "shuffleWallpaper"

// State is the persisted state the scheduler reads and maintains
type State interface {
	domain.Library
	SaveSettings(ctx context.Context, settings domain.Settings) error
	SaveShuffleState(ctx context.Context, enabled bool, interval int) error
	LastShuffleTime(ctx context.Context) (time.Time, bool, error)
	TouchLastShuffle(ctx context.Context, t time.Time) error
}

// Shuffler runs a single shuffle
type Shuffler interface {
	Shuffle(ctx context.Context, opts shuffle.Options) (domain.Wallpaper, error)
}

// Scheduler is a small state machine driven by the persisted Trigger:
// Idle (disabled), Armed (periodic alarm) or waiting for page opens.
type Scheduler struct {
	logger   *zap.Logger
	state    State
	shuffler Shuffler
	alarms   *alarm.Manager
	now      func() time.Time

	// applyMu serializes settings updates so the armed alarm, the trigger
	// and the persisted bookkeeping always describe the same settings
	applyMu sync.Mutex

	mu        sync.Mutex
	trigger   domain.Trigger
	notifiers []domain.Notifier

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler. Call Start to begin processing alarms.
func NewScheduler(logger *zap.Logger, state State, shuffler Shuffler, alarms *alarm.Manager) *Scheduler {
	return &Scheduler{
		logger:   logger,
		state:    state,
		shuffler: shuffler,
		alarms:   alarms,
		now:      time.Now,
	}
}

// AddNotifier registers a sink for WallpaperChanged notifications
func (s *Scheduler) AddNotifier(n domain.Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// Trigger returns the active trigger
func (s *Scheduler) Trigger() domain.Trigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger
}

// Start applies the persisted settings and launches the alarm loop.
// It returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Scheduler starting...")

	settings, err := s.state.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	trigger, err := s.Apply(ctx, settings)
	if err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.runLoop(loopCtx, s.overdue(ctx, trigger))
	return nil
}

// Stop ends the alarm loop and waits for an in-flight shuffle to finish
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("Scheduler stopping...")
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	s.alarms.Clear(ShuffleAlarm)

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runLoop(ctx context.Context, catchUp bool) {
	defer close(s.done)

	s.EnsureCurrent(ctx)
	if catchUp {
		s.logger.Info("Periodic shuffle overdue, running now")
		_, _ = s.fire(ctx)
	}

	fired := s.alarms.Fired()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler loop stopped")
			return

		case name := <-fired:
			if name != ShuffleAlarm {
				s.logger.Debug("Ignoring unknown alarm", zap.String("name", name))
				continue
			}
			if s.Trigger().Kind != domain.TriggerPeriodic {
				continue
			}
			s.logger.Debug("Shuffle alarm fired")
			_, _ = s.fire(ctx)
		}
	}
}

// Apply re-evaluates the trigger for settings, arming or clearing the alarm
// immediately, and records the scheduler bookkeeping.
func (s *Scheduler) Apply(ctx context.Context, settings domain.Settings) (domain.Trigger, error) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.apply(ctx, settings)
}

// apply is Apply with applyMu held
func (s *Scheduler) apply(ctx context.Context, settings domain.Settings) (domain.Trigger, error) {
	trigger := settings.Trigger()

	switch trigger.Kind {
	case domain.TriggerPeriodic:
		if err := s.alarms.Create(ShuffleAlarm, trigger.Period()); err != nil {
			return trigger, err
		}
	default:
		s.alarms.Clear(ShuffleAlarm)
	}

	s.mu.Lock()
	s.trigger = trigger
	s.mu.Unlock()

	enabled := trigger.Kind == domain.TriggerPeriodic
	if err := s.state.SaveShuffleState(ctx, enabled, settings.ShuffleInterval); err != nil {
		s.logger.Warn("Failed to record shuffle state", zap.Error(err))
	}

	s.logger.Info("Shuffle trigger applied",
		zap.Stringer("trigger", trigger.Kind),
		zap.Int("intervalMinutes", settings.ShuffleInterval))
	return trigger, nil
}

// PageOpened handles the page-lifecycle event. In on-page-open mode it runs
// a shuffle; it always returns the wallpaper the page should show.
func (s *Scheduler) PageOpened(ctx context.Context) domain.Wallpaper {
	if s.Trigger().Kind == domain.TriggerOnContextCreate {
		if w, err := s.fire(ctx); err == nil {
			return w
		}
	}
	return s.Current(ctx)
}

// Shuffle runs an explicitly requested shuffle. When no source is forced
// and the library is empty, it falls back to browsing.
func (s *Scheduler) Shuffle(ctx context.Context, opts shuffle.Options) (domain.Wallpaper, error) {
	return s.run(ctx, opts, !opts.Source.Valid())
}

// Current returns the persisted current wallpaper, or the built-in default
func (s *Scheduler) Current(ctx context.Context) domain.Wallpaper {
	current, err := s.state.GetCurrent(ctx)
	if err != nil {
		s.logger.Warn("Could not read current wallpaper", zap.Error(err))
	}
	if current == nil {
		return domain.DefaultWallpaper
	}
	return *current
}

// EnsureCurrent makes sure a current wallpaper exists. On first run it tries
// a shuffle with fallback and stores the built-in default if that fails.
func (s *Scheduler) EnsureCurrent(ctx context.Context) {
	current, err := s.state.GetCurrent(ctx)
	if err != nil {
		s.logger.Warn("Could not read current wallpaper", zap.Error(err))
		return
	}
	if current != nil {
		return
	}

	s.logger.Info("No current wallpaper, selecting an initial one")
	if _, err := s.run(ctx, shuffle.Options{}, true); err == nil {
		return
	}

	if err := s.state.SetCurrent(ctx, domain.DefaultWallpaper); err != nil {
		s.logger.Error("Failed to store default wallpaper", zap.Error(err))
		return
	}
	s.notify(ctx, domain.DefaultWallpaper)
}

// fire is the automatic path: persisted settings, library to browse fallback,
// failures logged and the current wallpaper left untouched.
func (s *Scheduler) fire(ctx context.Context) (domain.Wallpaper, error) {
	w, err := s.run(ctx, shuffle.Options{}, true)
	if err != nil {
		s.logger.Warn("Automatic shuffle failed, keeping current wallpaper", zap.Error(err))
	}
	return w, err
}

func (s *Scheduler) run(ctx context.Context, opts shuffle.Options, fallback bool) (domain.Wallpaper, error) {
	w, err := s.shuffler.Shuffle(ctx, opts)
	if fallback && errors.Is(err, domain.ErrEmptyLibrary) {
		s.logger.Info("Library is empty, falling back to browse")
		opts.Source = domain.SourceBrowse
		w, err = s.shuffler.Shuffle(ctx, opts)
	}
	if err != nil {
		return domain.Wallpaper{}, err
	}

	if err := s.state.TouchLastShuffle(ctx, s.now()); err != nil {
		s.logger.Warn("Failed to record last shuffle time", zap.Error(err))
	}
	s.notify(ctx, w)
	return w, nil
}

func (s *Scheduler) notify(ctx context.Context, w domain.Wallpaper) {
	s.mu.Lock()
	notifiers := append([]domain.Notifier(nil), s.notifiers...)
	s.mu.Unlock()

	var errs error
	for _, n := range notifiers {
		errs = multierr.Append(errs, n.NotifyWallpaperChanged(ctx, w))
	}
	if errs != nil {
		s.logger.Warn("Failed to notify wallpaper change", zap.String("id", w.ID), zap.Error(errs))
	}
}

// overdue reports whether a periodic shuffle was missed while the process was down
func (s *Scheduler) overdue(ctx context.Context, trigger domain.Trigger) bool {
	if trigger.Kind != domain.TriggerPeriodic {
		return false
	}
	last, ok, err := s.state.LastShuffleTime(ctx)
	if err != nil || !ok {
		return false
	}
	return s.now().Sub(last) >= trigger.Period()
}

// Handle executes a cross-context request
func (s *Scheduler) Handle(ctx context.Context, req domain.Request) domain.Response {
	resp := s.handle(ctx, req)
	resp.ID = req.ID
	metrics.RecordRequest(string(req.Type), resp.Success)
	return resp
}

func (s *Scheduler) handle(ctx context.Context, req domain.Request) domain.Response {
	switch req.Type {
	case domain.MsgShuffleWallpaper:
		w, err := s.Shuffle(ctx, shuffle.Options{Source: req.Source, NsfwFilter: req.NsfwFilter})
		if err != nil {
			return domain.Failure(req, err)
		}
		return domain.Response{Success: true, Wallpaper: &w}

	case domain.MsgShuffleSettingsUpdated:
		if err := s.updateSettings(ctx, req); err != nil {
			return domain.Failure(req, err)
		}
		return domain.Response{Success: true}

	case domain.MsgGetWallpaper:
		w := s.Current(ctx)
		return domain.Response{Success: true, Wallpaper: &w}

	case domain.MsgPageOpened:
		w := s.PageOpened(ctx)
		return domain.Response{Success: true, Wallpaper: &w}

	default:
		return domain.Failure(req, fmt.Errorf("unknown request type %q", req.Type))
	}
}

// updateSettings merges req into the persisted settings and applies the result.
// Concurrent updates are serialized so none of them is lost.
func (s *Scheduler) updateSettings(ctx context.Context, req domain.Request) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	settings, err := s.state.Settings(ctx)
	if err != nil {
		return err
	}
	settings = settings.Merge(req)
	if err := s.state.SaveSettings(ctx, settings); err != nil {
		return err
	}
	_, err = s.apply(ctx, settings)
	return err
}
