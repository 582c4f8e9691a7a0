package storage

import (
	"context"
	"fmt"

	"github.com/growthkit/linkedin-assistant/internal/config"
	"go.uber.org/zap"
)

// Open builds the KV driver selected by cfg. path is the resolved file or
// database path used by the file and sqlite drivers.
func Open(ctx context.Context, cfg config.StorageConfig, path string, logger *zap.Logger) (KV, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := config.ValidateStorage(cfg); err != nil {
		return nil, err
	}

	logger.Debug("opening storage", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.StorageFile:
		return NewFileStore(path)
	case config.StorageSQLite:
		return OpenSQLite(path, logger)
	case config.StorageRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.KeyPrefix)
	case config.StoragePostgres:
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
