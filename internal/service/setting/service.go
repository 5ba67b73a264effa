package setting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
)

type SettingServiceImpl struct {
	setting.SettingRepository
}

func NewSettingService(settingRepo setting.SettingRepository) setting.SettingService {
	return &SettingServiceImpl{SettingRepository: settingRepo}
}

// GetSettings implements setting.SettingService.
func (s *SettingServiceImpl) GetSettings(ctx context.Context) (setting.SystemConfig, error) {
	cfg, err := s.SettingRepository.Get(ctx)
	if err != nil {
		return setting.SystemConfig{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return cfg, nil
}

// UpdateSettings implements setting.SettingService.
func (s *SettingServiceImpl) UpdateSettings(ctx context.Context, req setting.UpdateSettingsRequest) (setting.SystemConfig, error) {
	if err := req.Validate(); err != nil {
		return setting.SystemConfig{}, err
	}

	cfg := setting.SystemConfig{DelayTolerance: *req.DelayTolerance}
	if err := s.SettingRepository.Save(ctx, cfg); err != nil {
		return setting.SystemConfig{}, fmt.Errorf("failed to update settings: %w", err)
	}

	slog.Info("settings updated", "delay_tolerance", cfg.DelayTolerance)
	return cfg, nil
}
