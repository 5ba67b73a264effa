package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punchsync"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/jwt"
)

// MaintenanceJobs holds the periodic work that keeps the local event log and
// session state tidy.
type MaintenanceJobs struct {
	syncer       punchsync.Service
	jwtService   jwt.Service
	syncInterval time.Duration
}

func NewMaintenanceJobs(syncer punchsync.Service, jwtService jwt.Service, syncInterval time.Duration) *MaintenanceJobs {
	if syncInterval <= 0 {
		syncInterval = time.Minute
	}
	return &MaintenanceJobs{
		syncer:       syncer,
		jwtService:   jwtService,
		syncInterval: syncInterval,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("trigger_punch_sync", j.syncInterval, j.TriggerPunchSync)
	scheduler.AddJob("purge_revoked_tokens", time.Hour, j.PurgeRevokedTokens)
}

// TriggerPunchSync retries the sync for punches recorded while offline. It is
// a no-op when the client is offline or nothing is pending.
func (j *MaintenanceJobs) TriggerPunchSync(ctx context.Context) error {
	started, err := j.syncer.Trigger(ctx)
	if err != nil {
		return err
	}
	if started {
		slog.Info("Cron: punch sync started")
	}
	return nil
}

func (j *MaintenanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	if n := j.jwtService.PurgeRevoked(time.Now()); n > 0 {
		slog.Info("Cron: purged revoked tokens", "count", n)
	}
	return nil
}
