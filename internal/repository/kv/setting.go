package kv

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
)

type settingRepositoryImpl struct {
	db *DB
}

func NewSettingRepository(db *DB) setting.SettingRepository {
	return &settingRepositoryImpl{db: db}
}

// Get implements setting.SettingRepository.
func (s *settingRepositoryImpl) Get(ctx context.Context) (setting.SystemConfig, error) {
	defer s.db.lock(ctx)()

	cfg := setting.Default()
	if err := s.db.load(ctx, KeyConfig, &cfg); err != nil {
		return setting.Default(), err
	}
	return cfg, nil
}

// Save implements setting.SettingRepository.
func (s *settingRepositoryImpl) Save(ctx context.Context, cfg setting.SystemConfig) error {
	defer s.db.lock(ctx)()

	if err := s.db.save(ctx, KeyConfig, cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
