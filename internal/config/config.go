package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultRedisURL          = "redis://localhost:6379/0"
	defaultNamespace         = "wallsync"
	defaultQuotaBytes        = 10 * 1024 * 1024 // same order as a browser storage.local area
	defaultCompressThreshold = 1024
	defaultProviderURL       = "https://wallhaven.cc/api/v1"
	defaultProviderTimeout   = 15 * time.Second
	defaultListenAddr        = "127.0.0.1:49453"
	defaultBusTimeout        = 20 * time.Second
)

// AppConfig holds application configuration
type AppConfig struct {
	logger            *zap.Logger
	redisURL          string
	namespace         string
	quotaBytes        int64
	compressThreshold int
	providerURL       string
	providerAPIKey    string
	providerTimeout   time.Duration
	listenAddr        string
	busTimeout        time.Duration
}

// NewAppConfig creates a new application configuration instance.
// Values come from the environment, optionally seeded from a .env file.
func NewAppConfig(logger *zap.Logger) *AppConfig {
	// A missing .env file is the normal case
	_ = godotenv.Load()

	cfg := &AppConfig{
		logger:            logger,
		redisURL:          getEnv("WALLSYNC_REDIS_URL", defaultRedisURL),
		namespace:         getEnv("WALLSYNC_NAMESPACE", defaultNamespace),
		quotaBytes:        getEnvInt64(logger, "WALLSYNC_QUOTA_BYTES", defaultQuotaBytes),
		compressThreshold: int(getEnvInt64(logger, "WALLSYNC_COMPRESS_THRESHOLD", defaultCompressThreshold)),
		providerURL:       getEnv("WALLSYNC_PROVIDER_URL", defaultProviderURL),
		providerAPIKey:    os.Getenv("WALLSYNC_PROVIDER_API_KEY"),
		providerTimeout:   getEnvDuration(logger, "WALLSYNC_PROVIDER_TIMEOUT", defaultProviderTimeout),
		listenAddr:        getEnv("WALLSYNC_LISTEN_ADDR", defaultListenAddr),
		busTimeout:        getEnvDuration(logger, "WALLSYNC_BUS_TIMEOUT", defaultBusTimeout),
	}

	logger.Info("Configuration loaded",
		zap.String("namespace", cfg.namespace),
		zap.Int64("quotaBytes", cfg.quotaBytes),
		zap.String("providerURL", cfg.providerURL),
		zap.Duration("providerTimeout", cfg.providerTimeout),
		zap.String("listenAddr", cfg.listenAddr))

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(logger *zap.Logger, key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		logger.Warn("Ignoring invalid integer setting", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return v
}

func getEnvDuration(logger *zap.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		logger.Warn("Ignoring invalid duration setting", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return v
}

// GetRedisURL returns the connection URL of the durable store
func (c *AppConfig) GetRedisURL() string { return c.redisURL }

// GetNamespace returns the key prefix used in the durable store
func (c *AppConfig) GetNamespace() string { return c.namespace }

// GetQuotaBytes returns the storage budget
func (c *AppConfig) GetQuotaBytes() int64 { return c.quotaBytes }

// GetCompressThreshold returns the payload size above which values are compressed
func (c *AppConfig) GetCompressThreshold() int { return c.compressThreshold }

// GetProviderURL returns the base URL of the remote provider API
func (c *AppConfig) GetProviderURL() string { return c.providerURL }

// GetProviderAPIKey returns the optional provider API key
func (c *AppConfig) GetProviderAPIKey() string { return c.providerAPIKey }

// GetProviderTimeout returns the client-enforced request timeout
func (c *AppConfig) GetProviderTimeout() time.Duration { return c.providerTimeout }

// GetListenAddr returns the page bridge listen address
func (c *AppConfig) GetListenAddr() string { return c.listenAddr }

// GetBusTimeout returns how long a foreground context waits for a reply
func (c *AppConfig) GetBusTimeout() time.Duration { return c.busTimeout }
