package ports

import (
	"context"
	"time"
)

// SettingsRepository stores process-wide key/value settings such as the fee configuration.
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)

	Upsert(ctx context.Context, values map[string]string) error
}

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}
