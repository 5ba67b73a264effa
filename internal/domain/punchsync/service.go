package punchsync

import "context"

// Service marks locally stored punches as synchronized.
type Service interface {
	// Trigger starts a background sync when online, punches are pending and
	// no sync is running. It reports whether a sync was started.
	Trigger(ctx context.Context) (bool, error)

	// Run performs one sync pass synchronously and returns how many punches
	// were marked.
	Run(ctx context.Context) (int, error)

	Status(ctx context.Context) (Status, error)
	SetOnline(ctx context.Context, online bool) (Status, error)
}
