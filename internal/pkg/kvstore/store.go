// Package kvstore provides the named-key persistence the attendance records
// can be kept in when no relational database is configured. Values are opaque
// byte payloads (the repositories store JSON); a missing key is reported with
// ErrNotFound so callers can fall back to their defaults.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
