package domain

//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/wallsync/internal/domain Library,Provider,Fetcher,Notifier,Config

import (
	"context"
	"time"
)

// Library is the durable wallpaper collection plus the current wallpaper record.
// Implementations must round-trip every call through persistent storage.
type Library interface {
	// Add inserts w at the front of the library. It is a no-op returning false
	// when an item with the same id already exists.
	Add(ctx context.Context, w Wallpaper) (bool, error)

	// Remove deletes the item with the given id and returns it.
	// Returns ErrNotFound when the id is absent.
	Remove(ctx context.Context, id string) (Wallpaper, error)

	// List returns the de-duplicated library, newest first
	List(ctx context.Context) ([]Wallpaper, error)

	// GetCurrent returns the current wallpaper, or nil if none was ever set
	GetCurrent(ctx context.Context) (*Wallpaper, error)

	// SetCurrent persists w as the current wallpaper.
	// Local uploads are also added to the library.
	SetCurrent(ctx context.Context, w Wallpaper) error

	// Settings returns a snapshot of the persisted user settings
	Settings(ctx context.Context) (Settings, error)
}

// Provider queries the remote image service.
// Search never fails: network and decoding errors yield an empty result.
type Provider interface {
	Search(ctx context.Context, q SearchQuery) SearchResult
}

// Fetcher defines the interface for retrieving raw image bytes
type Fetcher interface {
	// Fetch downloads image data from a URL
	// Returns the raw image bytes or an error
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Notifier tells other execution contexts that the persisted wallpaper changed
type Notifier interface {
	NotifyWallpaperChanged(ctx context.Context, w Wallpaper) error
}

// RequestHandler executes cross-context requests
type RequestHandler interface {
	Handle(ctx context.Context, req Request) Response
}

// Config defines the interface for application configuration
type Config interface {
	// GetRedisURL returns the connection URL of the durable store
	GetRedisURL() string

	// GetNamespace returns the key prefix used in the durable store
	GetNamespace() string

	// GetQuotaBytes returns the storage budget; zero disables the check
	GetQuotaBytes() int64

	// GetCompressThreshold returns the payload size above which values are compressed
	GetCompressThreshold() int

	// GetProviderURL returns the base URL of the remote provider API
	GetProviderURL() string

	// GetProviderAPIKey returns the optional provider API key
	GetProviderAPIKey() string

	// GetProviderTimeout returns the client-enforced request timeout
	GetProviderTimeout() time.Duration

	// GetListenAddr returns the page bridge listen address
	GetListenAddr() string

	// GetBusTimeout returns how long a foreground context waits for a reply
	GetBusTimeout() time.Duration
}
