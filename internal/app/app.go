// Package app holds the dependency graph shared by the daemon and the CLI.
package app

import (
	"context"

	"github.com/genricoloni/wallsync/internal/bus"
	"github.com/genricoloni/wallsync/internal/config"
	"github.com/genricoloni/wallsync/internal/display"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/fetcher"
	"github.com/genricoloni/wallsync/internal/library"
	"github.com/genricoloni/wallsync/internal/provider"
	"github.com/genricoloni/wallsync/internal/shuffle"
	"github.com/genricoloni/wallsync/internal/storage"
	"github.com/genricoloni/wallsync/internal/upload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Core provides persistence, the wallpaper provider and the shuffle engine.
// The caller supplies the *zap.Logger.
var Core = fx.Options(
	fx.Provide(
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),
		NewRedis,
		NewCodec,
		NewBackend,
		NewAdapter,
		library.NewStore,
		func(s *library.Store) domain.Library { return s },
		display.NewScreenResolution,
		fx.Annotate(provider.NewWallhavenClient, fx.As(new(domain.Provider))),
		fx.Annotate(fetcher.NewHTTPFetcher, fx.As(new(domain.Fetcher))),
		upload.NewProcessor,
		shuffle.NewEngine,
		bus.NewClient,
	),
)

// NewRedis opens the shared Redis client. The connection is checked on start.
func NewRedis(lc fx.Lifecycle, logger *zap.Logger, cfg domain.Config) (*redis.Client, error) {
	client, err := storage.NewRedisClient(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return err
			}
			logger.Debug("Connected to redis")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

// NewCodec creates the value codec and releases its encoders on stop
func NewCodec(lc fx.Lifecycle, cfg domain.Config) (*storage.Codec, error) {
	codec, err := storage.NewCodec(cfg.GetCompressThreshold())
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(codec.Close))
	return codec, nil
}

// NewBackend scopes the durable area to the configured namespace
func NewBackend(client *redis.Client, cfg domain.Config) storage.Backend {
	return storage.NewRedisBackend(client, cfg.GetNamespace())
}

// NewAdapter creates the quota-aware persistence adapter
func NewAdapter(logger *zap.Logger, backend storage.Backend, codec *storage.Codec, cfg domain.Config) *storage.Adapter {
	return storage.NewAdapter(logger, backend, codec, cfg.GetQuotaBytes())
}
