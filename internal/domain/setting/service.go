package setting

import "context"

type SettingService interface {
	GetSettings(ctx context.Context) (SystemConfig, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SystemConfig, error)
}
