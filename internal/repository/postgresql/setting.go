package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingRepositoryImpl struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepositoryImpl{db: db}
}

// Get implements setting.SettingRepository.
func (s *settingRepositoryImpl) Get(ctx context.Context) (setting.SystemConfig, error) {
	q := GetQuerier(ctx, s.db)

	var cfg setting.SystemConfig
	err := q.QueryRow(ctx, `SELECT delay_tolerance FROM system_config WHERE id = 1`).Scan(&cfg.DelayTolerance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return setting.Default(), nil
		}
		return setting.Default(), fmt.Errorf("failed to get settings: %w", err)
	}
	return cfg, nil
}

// Save implements setting.SettingRepository.
func (s *settingRepositoryImpl) Save(ctx context.Context, cfg setting.SystemConfig) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO system_config (id, delay_tolerance) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET delay_tolerance = EXCLUDED.delay_tolerance
	`
	if _, err := q.Exec(ctx, query, cfg.DelayTolerance); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
