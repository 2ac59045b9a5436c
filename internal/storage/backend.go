package storage

import (
	"context"
	"fmt"

	"github.com/gamevault/storefront-backend/pkg/config"
	"github.com/gamevault/storefront-backend/pkg/db"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/gamevault/storefront-backend/pkg/redis"
)

// Open builds the backend selected by cfg.Storage. The returned closer
// releases any connection the backend holds.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch backend := cfg.Storage.NormalizedBackend(); backend {
	case config.StorageBackendMemory:
		return NewMemoryBackend(), noop, nil
	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("connecting redis: %w", err)
		}
		return NewRedisBackend(client, cfg.Storage.SessionTTL), client.Close, nil
	case config.StorageBackendSQLite, config.StorageBackendPostgres:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("connecting database: %w", err)
		}
		return NewSQLBackend(client, backend), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage backend %q", backend)
	}
}
