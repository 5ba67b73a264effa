// Package kv implements the repositories on top of a kvstore.Store. Each
// collection is one JSON document under a fixed key.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/kvstore"
)

const (
	KeyEmployees = "chronos_employees"
	KeyPunches   = "chronos_logs"
	KeyAlerts    = "chronos_alerts"
	KeyConfig    = "chronos_config"
)

// DB serializes read-modify-write cycles of all kv repositories built on it.
type DB struct {
	store kvstore.Store
	mu    sync.Mutex
}

func NewDB(store kvstore.Store) *DB {
	return &DB{store: store}
}

func (d *DB) Close() error {
	return d.store.Close()
}

// load decodes key into dst. A missing or corrupt document leaves dst
// untouched and is not an error.
func (d *DB) load(ctx context.Context, key string, dst any) error {
	raw, err := d.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("discarding corrupt record", "key", key, "error", err)
		// Reset collections that may have been partially decoded.
		_ = json.Unmarshal([]byte("null"), dst)
		return nil
	}
	return nil
}

func (d *DB) save(ctx context.Context, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := d.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

type txKey struct{}

var collectionKeys = []string{KeyEmployees, KeyPunches, KeyAlerts, KeyConfig}

// lock takes the store mutex unless ctx already runs inside WithTransaction
// on this DB. The returned func releases it.
func (d *DB) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*DB); ok && owner == d {
		return func() {}
	}
	d.mu.Lock()
	return d.mu.Unlock
}

// WithTransaction runs fn while holding the store mutex. When fn fails, every
// collection is restored to the bytes it held before fn started.
func (d *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(txKey{}).(*DB); ok && owner == d {
		return fn(ctx)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := make(map[string][]byte, len(collectionKeys))
	for _, key := range collectionKeys {
		raw, err := d.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, kvstore.ErrNotFound) {
				snapshot[key] = nil
				continue
			}
			return fmt.Errorf("failed to snapshot %s: %w", key, err)
		}
		snapshot[key] = raw
	}

	if err := fn(context.WithValue(ctx, txKey{}, d)); err != nil {
		for _, key := range collectionKeys {
			raw := snapshot[key]
			if raw == nil {
				raw = []byte("null")
			}
			if rbErr := d.store.Set(ctx, key, raw); rbErr != nil {
				slog.Error("failed to restore collection", "key", key, "error", rbErr)
			}
		}
		return err
	}
	return nil
}
