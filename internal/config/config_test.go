package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Timezone)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "12h", cfg.JWT.AccessExpiration)
	assert.Equal(t, -23.5505, cfg.Office.Latitude)
	assert.Equal(t, 1000.0, cfg.Office.RadiusMeters)
	assert.Equal(t, 2*time.Second, cfg.Sync.Delay)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/chronos-test.db")
	t.Setenv("OFFICE_RADIUS_METERS", "250.5")
	t.Setenv("SYNC_DELAY", "0s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/chronos-test.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 250.5, cfg.Office.RadiusMeters)
	assert.Equal(t, time.Duration(0), cfg.Sync.Delay)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"STORAGE_DRIVER": "memory"}},
		{name: "postgres without password", env: map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "postgres"}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "redis"}},
		{name: "bad latitude", env: map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "OFFICE_LATITUDE": "north"}},
		{name: "bad sync interval", env: map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "SYNC_INTERVAL": "0s"}},
		{name: "unknown timezone", env: map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "APP_TIMEZONE": "America/Atlantis"}},
		{name: "bad expiration", env: map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "JWT_ACCESS_EXPIRATION_TIME": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "")
			t.Setenv("DB_PASSWORD", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
