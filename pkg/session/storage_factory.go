package session

import (
	"context"
	"fmt"

	"github.com/kadualabs/vendorhub/pkg/config"
)

// OpenStorage builds the storage backend named by the configuration.
func OpenStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendFile:
		return NewFileStorage(cfg.Session.Path)
	case config.SessionBackendEncrypted:
		key, err := cfg.Session.EncryptionKey()
		if err != nil {
			return nil, err
		}
		return NewEncryptedFileStorage(cfg.Session.Path, key)
	case config.SessionBackendSQLite:
		return NewSQLiteStorage(cfg.Session.Path)
	case config.SessionBackendRedis:
		return NewRedisStorage(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
