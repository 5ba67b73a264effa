package connectivity

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Monitor holds the latest online/offline signal reported by the client.
// It only gates the sync trigger; evaluators never read it.
type Monitor struct {
	online    atomic.Bool
	mu        sync.Mutex
	listeners []func(online bool)
}

func NewMonitor(initial bool) *Monitor {
	m := &Monitor{}
	m.online.Store(initial)
	return m
}

func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Set records a new signal. Listeners are notified only on transitions.
func (m *Monitor) Set(online bool) {
	previous := m.online.Swap(online)
	if previous == online {
		return
	}

	slog.Info("Connectivity changed", "online", online)

	m.mu.Lock()
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(online)
	}
}

// OnChange registers fn to be called after every transition.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}
