package setting

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/kvstore"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/chronos-backend-go/internal/repository/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingService(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(kv.NewSettingRepository(kv.NewDB(kvstore.NewMemory())))

	cfg, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.DelayTolerance)

	ten := 10
	cfg, err = svc.UpdateSettings(ctx, setting.UpdateSettingsRequest{DelayTolerance: &ten})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DelayTolerance)

	cfg, err = svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DelayTolerance)

	negative := -1
	_, err = svc.UpdateSettings(ctx, setting.UpdateSettingsRequest{DelayTolerance: &negative})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateSettings(ctx, setting.UpdateSettingsRequest{})
	assert.ErrorAs(t, err, &verrs)
}
