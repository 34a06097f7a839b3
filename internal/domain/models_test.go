package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"
)

func TestSettings_Trigger(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     Trigger
	}{
		{
			name:     "Enabled with interval is periodic",
			settings: Settings{IsShuffleEnabled: true, ShuffleInterval: 30},
			want:     Trigger{Kind: TriggerPeriodic, Minutes: 30},
		},
		{
			name:     "Enabled wins over new tab",
			settings: Settings{IsShuffleEnabled: true, ShuffleInterval: 5, ShuffleOnNewTab: true},
			want:     Trigger{Kind: TriggerPeriodic, Minutes: 5},
		},
		{
			name:     "Zero interval with new tab fires on page open",
			settings: Settings{ShuffleInterval: 0, ShuffleOnNewTab: true},
			want:     Trigger{Kind: TriggerOnContextCreate},
		},
		{
			name:     "Zero interval enabled with new tab fires on page open",
			settings: Settings{IsShuffleEnabled: true, ShuffleInterval: 0, ShuffleOnNewTab: true},
			want:     Trigger{Kind: TriggerOnContextCreate},
		},
		{
			name:     "Nonzero interval with new tab only is disabled",
			settings: Settings{ShuffleInterval: 30, ShuffleOnNewTab: true},
			want:     Trigger{Kind: TriggerDisabled},
		},
		{
			name:     "Defaults are disabled",
			settings: DefaultSettings(),
			want:     Trigger{Kind: TriggerDisabled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.Trigger(); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestTrigger_Period(t *testing.T) {
	trigger := Trigger{Kind: TriggerPeriodic, Minutes: 15}
	if trigger.Period() != 15*time.Minute {
		t.Errorf("expected 15m, got %s", trigger.Period())
	}
}

func TestSettings_Normalize(t *testing.T) {
	got := Settings{RefreshSource: "camera", RefreshNsfwFilter: "maybe", ShuffleInterval: -3}.Normalize()

	if got.RefreshSource != SourceLibrary {
		t.Errorf("expected library source, got %q", got.RefreshSource)
	}
	if got.RefreshNsfwFilter != NsfwOff {
		t.Errorf("expected nsfw off, got %q", got.RefreshNsfwFilter)
	}
	if got.ShuffleInterval != 0 {
		t.Errorf("expected interval clamped to 0, got %d", got.ShuffleInterval)
	}

	valid := Settings{RefreshSource: SourceBrowse, RefreshNsfwFilter: NsfwOnly, ShuffleInterval: 10}
	if valid.Normalize() != valid {
		t.Errorf("valid settings must be unchanged, got %+v", valid.Normalize())
	}
}

func TestSettings_Merge(t *testing.T) {
	enabled := true
	interval := 45
	base := DefaultSettings()

	got := base.Merge(Request{
		Type:       MsgShuffleSettingsUpdated,
		IsEnabled:  &enabled,
		Interval:   &interval,
		NsfwFilter: NsfwAllowed,
	})

	want := base
	want.IsShuffleEnabled = true
	want.ShuffleInterval = 45
	want.RefreshNsfwFilter = NsfwAllowed
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	// Unset and invalid fields leave the current values alone
	untouched := base.Merge(Request{Type: MsgShuffleSettingsUpdated, Source: "camera"})
	if untouched != base {
		t.Errorf("expected unchanged settings, got %+v", untouched)
	}
}

func TestWallpaper_Degraded(t *testing.T) {
	w := Wallpaper{ID: "a", Path: "data:image/png;base64,FULL", Thumbnail: "data:image/jpeg;base64,THUMB"}
	d := w.Degraded()
	if d.Path != w.Thumbnail {
		t.Errorf("expected path replaced by thumbnail, got %q", d.Path)
	}
	if w.Path != "data:image/png;base64,FULL" {
		t.Error("original must not be modified")
	}

	noThumb := Wallpaper{ID: "b", Path: "https://example.com/b.jpg"}
	if noThumb.Degraded().Path != noThumb.Path {
		t.Error("path must be kept when there is no thumbnail")
	}
}

func TestWallpaper_IsLocalUpload(t *testing.T) {
	if !(Wallpaper{SourceType: SourceLocal, Source: LocalUploadSource}).IsLocalUpload() {
		t.Error("expected local upload")
	}
	if (Wallpaper{SourceType: SourceRemote, Source: LocalUploadSource}).IsLocalUpload() {
		t.Error("remote wallpaper is not a local upload")
	}
	if DefaultWallpaper.IsLocalUpload() {
		t.Error("default wallpaper is not a local upload")
	}
}

func TestNewLocalID(t *testing.T) {
	now := time.UnixMilli(1717171717171)
	rng := rand.New(rand.NewPCG(1, 2))

	first := NewLocalID(now, rng)
	second := NewLocalID(now, rng)

	pattern := regexp.MustCompile(`^local-1717171717171-[0-9a-f]{8}$`)
	if !pattern.MatchString(first) {
		t.Errorf("unexpected id format %q", first)
	}
	if first == second {
		t.Errorf("ids generated in the same millisecond must differ: %q", first)
	}
	if !pattern.MatchString(NewLocalID(now, nil)) {
		t.Error("nil rng must fall back to the global source")
	}
}

func TestQuotaError(t *testing.T) {
	err := fmt.Errorf("write current: %w", &QuotaError{Key: "currentWallpaper", Err: ErrQuotaExceeded})

	if !errors.Is(err, ErrQuotaExceeded) {
		t.Error("expected errors.Is to find ErrQuotaExceeded")
	}
	var qe *QuotaError
	if !errors.As(err, &qe) || qe.Key != "currentWallpaper" {
		t.Fatalf("expected a QuotaError, got %v", err)
	}
	if qe.Error() != QuotaRemediation {
		t.Errorf("expected remediation message, got %q", qe.Error())
	}
}

func TestIsPolicyFailure(t *testing.T) {
	for _, err := range []error{ErrEmptyLibrary, ErrNoMatchingContent, fmt.Errorf("wrapped: %w", ErrNoResultsAvailable)} {
		if !IsPolicyFailure(err) {
			t.Errorf("expected %v to be a policy failure", err)
		}
	}
	if IsPolicyFailure(ErrQuotaExceeded) {
		t.Error("quota failure is not a policy failure")
	}
}
