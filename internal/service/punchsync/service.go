package punchsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punchsync"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/connectivity"
)

// DefaultSuccessHold is how long the SUCCESS state is shown before IDLE.
const DefaultSuccessHold = 3 * time.Second

// Syncer marks stored punches as synchronized. There is no remote side: a
// sync waits for the configured delay and then flips the synced flag of
// every punch that was pending.
type Syncer struct {
	punch.PunchRepository
	monitor     *connectivity.Monitor
	clock       clock.Clock
	delay       time.Duration
	successHold time.Duration

	mu           sync.Mutex
	state        punchsync.State
	lastSyncedAt *time.Time
	lastSynced   int
	resetTimer   *time.Timer
	wg           sync.WaitGroup
}

type Option func(*Syncer)

func WithSuccessHold(d time.Duration) Option {
	return func(s *Syncer) {
		s.successHold = d
	}
}

// NewSyncer builds a Syncer and subscribes it to monitor so that coming back
// online starts a sync.
func NewSyncer(punchRepo punch.PunchRepository, monitor *connectivity.Monitor, clk clock.Clock, delay time.Duration, opts ...Option) *Syncer {
	s := &Syncer{
		PunchRepository: punchRepo,
		monitor:         monitor,
		clock:           clk,
		delay:           delay,
		successHold:     DefaultSuccessHold,
		state:           punchsync.StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}

	monitor.OnChange(func(online bool) {
		if !online {
			return
		}
		if _, err := s.Trigger(context.Background()); err != nil {
			slog.Error("sync on reconnect failed", "error", err)
		}
	})
	return s
}

// Trigger implements punchsync.Service.
func (s *Syncer) Trigger(ctx context.Context) (bool, error) {
	if !s.monitor.Online() {
		return false, nil
	}

	pending, err := s.PunchRepository.CountUnsynced(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count pending punches: %w", err)
	}
	if pending == 0 {
		return false, nil
	}

	s.mu.Lock()
	if s.state == punchsync.StateSyncing {
		s.mu.Unlock()
		return false, nil
	}
	s.state = punchsync.StateSyncing
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	s.wg.Add(1)
	s.mu.Unlock()

	slog.Info("punch sync started", "pending", pending)

	go func() {
		defer s.wg.Done()

		// The request that triggered the sync may end before the delay elapses.
		bg := context.WithoutCancel(ctx)
		if s.delay > 0 {
			time.Sleep(s.delay)
		}

		if _, err := s.Run(bg); err != nil {
			slog.Error("punch sync failed", "error", err)
			s.setState(punchsync.StateIdle)
			return
		}
		s.finish()
	}()

	return true, nil
}

// Run implements punchsync.Service.
func (s *Syncer) Run(ctx context.Context) (int, error) {
	unsynced, err := s.PunchRepository.ListUnsynced(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending punches: %w", err)
	}
	if len(unsynced) == 0 {
		return 0, nil
	}

	ids := make([]string, len(unsynced))
	for i, p := range unsynced {
		ids[i] = p.ID
	}
	if err := s.PunchRepository.MarkSynced(ctx, ids); err != nil {
		return 0, fmt.Errorf("failed to mark punches synced: %w", err)
	}

	now := s.clock.Now()
	s.mu.Lock()
	s.lastSyncedAt = &now
	s.lastSynced = len(ids)
	s.mu.Unlock()

	slog.Info("punch sync finished", "synced", len(ids))
	return len(ids), nil
}

// Status implements punchsync.Service.
func (s *Syncer) Status(ctx context.Context) (punchsync.Status, error) {
	pending, err := s.PunchRepository.CountUnsynced(ctx)
	if err != nil {
		return punchsync.Status{}, fmt.Errorf("failed to count pending punches: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return punchsync.Status{
		State:        s.state,
		Online:       s.monitor.Online(),
		PendingCount: pending,
		LastSyncedAt: s.lastSyncedAt,
		LastSynced:   s.lastSynced,
	}, nil
}

// SetOnline implements punchsync.Service.
func (s *Syncer) SetOnline(ctx context.Context, online bool) (punchsync.Status, error) {
	s.monitor.Set(online)
	return s.Status(ctx)
}

// Wait blocks until in-flight syncs have finished.
func (s *Syncer) Wait() {
	s.wg.Wait()
}

func (s *Syncer) setState(state punchsync.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Syncer) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = punchsync.StateSuccess
	s.resetTimer = time.AfterFunc(s.successHold, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == punchsync.StateSuccess {
			s.state = punchsync.StateIdle
		}
	})
}
