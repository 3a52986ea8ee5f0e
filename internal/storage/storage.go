package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abisalde/povertyline-client/internal/configs"
)

var ErrNotFound = errors.New("storage: key not found")

// Storage is durable client-side key/value storage that survives restarts.
// SetMany and Delete apply all their keys together.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// New opens the backend named by cfg.Storage.Driver.
func New(ctx context.Context, cfg *configs.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case configs.DriverMemory:
		return NewMemoryStorage(), nil
	case configs.DriverFile:
		return NewFileStorage(cfg.Storage.Path)
	case configs.DriverRedis:
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return InitRedis(ctxWithTimeout, cfg)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
