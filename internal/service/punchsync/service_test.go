package punchsync

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punchsync"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/connectivity"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/kvstore"
	"github.com/cmlabs-hris/chronos-backend-go/internal/repository/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

func newTestSyncer(t *testing.T, online bool, opts ...Option) (*Syncer, punch.PunchRepository, *connectivity.Monitor) {
	t.Helper()
	repo := kv.NewPunchRepository(kv.NewDB(kvstore.NewMemory()))
	monitor := connectivity.NewMonitor(online)
	return NewSyncer(repo, monitor, clock.Fixed{At: now}, 0, opts...), repo, monitor
}

func appendPunches(t *testing.T, repo punch.PunchRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Append(context.Background(), punch.Punch{
			EmployeeID: "e1",
			Kind:       punch.KindIn,
			Timestamp:  now.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestRun_MarksEveryPendingPunch(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestSyncer(t, true)
	appendPunches(t, repo, 3)

	n, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	status, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.PendingCount)
	assert.Equal(t, 3, status.LastSynced)
	require.NotNil(t, status.LastSyncedAt)
	assert.True(t, now.Equal(*status.LastSyncedAt))

	n, err = s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTrigger_SkipsWhenOfflineOrNothingPending(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestSyncer(t, false)

	started, err := s.Trigger(ctx)
	require.NoError(t, err)
	assert.False(t, started)

	appendPunches(t, repo, 1)
	started, err = s.Trigger(ctx)
	require.NoError(t, err)
	assert.False(t, started, "offline")

	online, _, _ := newTestSyncer(t, true)
	started, err = online.Trigger(ctx)
	require.NoError(t, err)
	assert.False(t, started, "nothing pending")
}

func TestTrigger_StateMachine(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestSyncer(t, true, WithSuccessHold(300*time.Millisecond))
	appendPunches(t, repo, 2)

	started, err := s.Trigger(ctx)
	require.NoError(t, err)
	assert.True(t, started)

	s.Wait()
	status, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, punchsync.StateSuccess, status.State)
	assert.Equal(t, 0, status.PendingCount)

	assert.Eventually(t, func() bool {
		st, err := s.Status(ctx)
		return err == nil && st.State == punchsync.StateIdle
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTrigger_OnlyOneSyncAtATime(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewPunchRepository(kv.NewDB(kvstore.NewMemory()))
	s := NewSyncer(repo, connectivity.NewMonitor(true), clock.Fixed{At: now}, 100*time.Millisecond)
	appendPunches(t, repo, 1)

	first, err := s.Trigger(ctx)
	require.NoError(t, err)
	second, err := s.Trigger(ctx)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)

	status, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, punchsync.StateSyncing, status.State)
	s.Wait()
}

func TestReconnectStartsSync(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestSyncer(t, false)
	appendPunches(t, repo, 2)

	status, err := s.SetOnline(ctx, true)
	require.NoError(t, err)
	assert.True(t, status.Online)

	s.Wait()
	status, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.PendingCount)
	assert.Equal(t, 2, status.LastSynced)
}
