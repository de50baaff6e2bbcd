package database

import (
	"errors"
	"fmt"

	"eventhub/internal/shared/config"
	"eventhub/internal/storage"
	"eventhub/pkg/logger"
)

// OpenStore builds the key-value store selected by STORE_DRIVER on top of
// the connections held by db. A non-nil log traces every store operation
// at debug level.
func OpenStore(cfg *config.Config, db *DB, log *logger.Logger) (storage.Store, error) {
	store, err := openBackend(cfg, db)
	if err != nil || log == nil {
		return store, err
	}
	return storage.WithLogging(store, log.WithComponent("store")), nil
}

func openBackend(cfg *config.Config, db *DB) (storage.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil
	case config.StoreFile, "":
		path := cfg.Store.FilePath
		if path == "" {
			p, err := storage.DefaultFilePath()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve store path: %w", err)
			}
			path = p
		}
		return storage.NewFileStore(path)
	case config.StoreRedis:
		if db == nil || db.Redis == nil {
			return nil, errors.New("redis store requires a redis connection")
		}
		return storage.NewRedisStore(db.Redis, cfg.Store.Namespace), nil
	case config.StorePostgres:
		if db == nil || db.PostgreSQL == nil {
			return nil, errors.New("postgres store requires a database connection")
		}
		return storage.NewPostgresStore(db.PostgreSQL, cfg.Store.Namespace)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
