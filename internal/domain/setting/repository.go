package setting

import "context"

type SettingRepository interface {
	// Get returns the stored configuration or Default when none is stored.
	Get(ctx context.Context) (SystemConfig, error)
	Save(ctx context.Context, cfg SystemConfig) error
}
