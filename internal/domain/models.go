package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// SourceType tells where a wallpaper's payload comes from
type SourceType string

const (
	// SourceLocal marks an image embedded in the record itself
	SourceLocal SourceType = "local"
	// SourceRemote marks an image served by the remote provider
	SourceRemote SourceType = "remote"
)

// LocalUploadSource is the Source sentinel for user uploads
const LocalUploadSource = "local-upload"

// WallpaperInfo holds descriptive metadata about a wallpaper
type WallpaperInfo struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	FileSize  int64     `json:"fileSize,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	// Purity is the provider's own content rating (sfw, sketchy, nsfw), if known
	Purity string `json:"purity,omitempty"`
}

// Wallpaper is a displayable image. Records are replaced wholesale, never patched.
type Wallpaper struct {
	ID         string        `json:"id"`
	Path       string        `json:"path"`
	Thumbnail  string        `json:"thumbnail"`
	SourceType SourceType    `json:"sourceType"`
	Source     string        `json:"source"`
	Resolution string        `json:"resolution"`
	Info       WallpaperInfo `json:"info"`
	AddedAt    *time.Time    `json:"addedAt,omitempty"`
}

// IsLocalUpload reports whether w was uploaded by the user
func (w Wallpaper) IsLocalUpload() bool {
	return w.SourceType == SourceLocal && w.Source == LocalUploadSource
}

// Degraded returns a copy of w whose full-resolution path is replaced by its thumbnail
func (w Wallpaper) Degraded() Wallpaper {
	if w.Thumbnail != "" {
		w.Path = w.Thumbnail
	}
	return w
}

// FormatResolution renders a resolution as "<width>x<height>"
func FormatResolution(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// NewLocalID generates an id for a user upload: a millisecond timestamp plus a random suffix.
// Collision resistant, not cryptographically unique.
func NewLocalID(now time.Time, rng *rand.Rand) string {
	var suffix uint32
	if rng != nil {
		suffix = rng.Uint32()
	} else {
		suffix = rand.Uint32()
	}
	return fmt.Sprintf("local-%d-%08x", now.UnixMilli(), suffix)
}

// RefreshSource selects the pool a shuffle draws from
type RefreshSource string

const (
	// SourceLibrary draws from the user's library
	SourceLibrary RefreshSource = "library"
	// SourceBrowse draws from the remote provider
	SourceBrowse RefreshSource = "browse"
)

// Valid reports whether s is a known source
func (s RefreshSource) Valid() bool {
	return s == SourceLibrary || s == SourceBrowse
}

// NsfwFilter is the three-state content-rating control
type NsfwFilter string

const (
	// NsfwOff only allows safe content
	NsfwOff NsfwFilter = "off"
	// NsfwAllowed allows safe and unsafe content
	NsfwAllowed NsfwFilter = "allowed"
	// NsfwOnly restricts results to unsafe content
	NsfwOnly NsfwFilter = "only"
)

// Valid reports whether f is a known filter value
func (f NsfwFilter) Valid() bool {
	return f == NsfwOff || f == NsfwAllowed || f == NsfwOnly
}

// Settings is the read-only snapshot of user preferences consumed by the core
type Settings struct {
	RefreshSource     RefreshSource `json:"refreshSource"`
	RefreshNsfwFilter NsfwFilter    `json:"refreshNsfwFilter"`
	// ShuffleInterval is in minutes; 0 means "on next page open"
	ShuffleInterval  int  `json:"shuffleInterval"`
	IsShuffleEnabled bool `json:"isShuffleEnabled"`
	ShuffleOnNewTab  bool `json:"shuffleOnNewTab"`
}

// DefaultSettings returns the settings used before the user changes anything
func DefaultSettings() Settings {
	return Settings{
		RefreshSource:     SourceLibrary,
		RefreshNsfwFilter: NsfwOff,
		ShuffleInterval:   30,
		IsShuffleEnabled:  false,
		ShuffleOnNewTab:   false,
	}
}

// Normalize fills unknown or missing fields with defaults
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if !s.RefreshSource.Valid() {
		s.RefreshSource = def.RefreshSource
	}
	if !s.RefreshNsfwFilter.Valid() {
		s.RefreshNsfwFilter = def.RefreshNsfwFilter
	}
	if s.ShuffleInterval < 0 {
		s.ShuffleInterval = 0
	}
	return s
}

// TriggerKind enumerates how automatic shuffles are started
type TriggerKind int

const (
	// TriggerDisabled means no automatic shuffling
	TriggerDisabled TriggerKind = iota
	// TriggerPeriodic fires on a recurring alarm
	TriggerPeriodic
	// TriggerOnContextCreate fires when a new page context is opened
	TriggerOnContextCreate
)

// String returns a readable name for logging
func (k TriggerKind) String() string {
	switch k {
	case TriggerPeriodic:
		return "periodic"
	case TriggerOnContextCreate:
		return "on-context-create"
	default:
		return "disabled"
	}
}

// Trigger is a tagged variant: Periodic(minutes) | OnContextCreate | Disabled
type Trigger struct {
	Kind    TriggerKind
	Minutes int
}

// Period returns the alarm period for a periodic trigger
func (t Trigger) Period() time.Duration {
	return time.Duration(t.Minutes) * time.Minute
}

// Trigger derives the scheduling variant from the persisted settings
func (s Settings) Trigger() Trigger {
	switch {
	case s.IsShuffleEnabled && s.ShuffleInterval > 0:
		return Trigger{Kind: TriggerPeriodic, Minutes: s.ShuffleInterval}
	case s.ShuffleInterval == 0 && s.ShuffleOnNewTab:
		return Trigger{Kind: TriggerOnContextCreate}
	default:
		return Trigger{Kind: TriggerDisabled}
	}
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}

// String renders the resolution as "<width>x<height>"
func (r ScreenResolution) String() string {
	return FormatResolution(r.Width, r.Height)
}

// DefaultWallpaper is shown when neither the library nor the provider can supply an image
var DefaultWallpaper = Wallpaper{
	ID:         "default-wallpaper",
	Path:       "https://w.wallhaven.cc/full/vq/wallhaven-vqjr3l.jpg",
	Thumbnail:  "https://th.wallhaven.cc/small/vq/vqjr3l.jpg",
	SourceType: SourceRemote,
	Source:     "https://whvn.cc/vqjr3l",
	Resolution: "3840x2160",
	Info: WallpaperInfo{
		Title:     "Default wallpaper",
		CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		MimeType:  "image/jpeg",
		Tags:      []string{"landscape", "safe"},
		Purity:    "sfw",
	},
}
