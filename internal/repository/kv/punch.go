package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/google/uuid"
)

type punchRepositoryImpl struct {
	db *DB
}

func NewPunchRepository(db *DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

func (p *punchRepositoryImpl) all(ctx context.Context) ([]punch.Punch, error) {
	var punches []punch.Punch
	if err := p.db.load(ctx, KeyPunches, &punches); err != nil {
		return nil, err
	}
	return punches, nil
}

// Append implements punch.PunchRepository.
func (p *punchRepositoryImpl) Append(ctx context.Context, newPunch punch.Punch) (punch.Punch, error) {
	defer p.db.lock(ctx)()

	punches, err := p.all(ctx)
	if err != nil {
		return punch.Punch{}, err
	}

	if newPunch.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return punch.Punch{}, fmt.Errorf("failed to generate punch id: %w", err)
		}
		newPunch.ID = id.String()
	}

	punches = append(punches, newPunch)
	if err := p.db.save(ctx, KeyPunches, punches); err != nil {
		return punch.Punch{}, fmt.Errorf("failed to append punch: %w", err)
	}
	return newPunch, nil
}

// ListByEmployeeBetween implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]punch.Punch, error) {
	defer p.db.lock(ctx)()

	punches, err := p.all(ctx)
	if err != nil {
		return nil, err
	}

	var out []punch.Punch
	for _, pu := range punch.OnDay(punches, from, to) {
		if pu.EmployeeID == employeeID {
			out = append(out, pu)
		}
	}
	return out, nil
}

// ListBetween implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]punch.Punch, error) {
	defer p.db.lock(ctx)()

	punches, err := p.all(ctx)
	if err != nil {
		return nil, err
	}
	return punch.OnDay(punches, from, to), nil
}

// ListUnsynced implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListUnsynced(ctx context.Context) ([]punch.Punch, error) {
	defer p.db.lock(ctx)()

	punches, err := p.all(ctx)
	if err != nil {
		return nil, err
	}

	var out []punch.Punch
	for _, pu := range punches {
		if !pu.Synced {
			out = append(out, pu)
		}
	}
	return out, nil
}

// CountUnsynced implements punch.PunchRepository.
func (p *punchRepositoryImpl) CountUnsynced(ctx context.Context) (int, error) {
	unsynced, err := p.ListUnsynced(ctx)
	if err != nil {
		return 0, err
	}
	return len(unsynced), nil
}

// MarkSynced implements punch.PunchRepository.
func (p *punchRepositoryImpl) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	defer p.db.lock(ctx)()

	punches, err := p.all(ctx)
	if err != nil {
		return err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for i := range punches {
		if _, ok := wanted[punches[i].ID]; ok {
			punches[i].Synced = true
		}
	}

	if err := p.db.save(ctx, KeyPunches, punches); err != nil {
		return fmt.Errorf("failed to mark punches synced: %w", err)
	}
	return nil
}

// DeleteByEmployee implements punch.PunchRepository.
func (p *punchRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	defer p.db.lock(ctx)()

	punches, err := p.all(ctx)
	if err != nil {
		return err
	}
	if err := p.db.save(ctx, KeyPunches, withoutEmployeePunches(punches, employeeID)); err != nil {
		return fmt.Errorf("failed to delete punches: %w", err)
	}
	return nil
}

func withoutEmployeePunches(punches []punch.Punch, employeeID string) []punch.Punch {
	kept := make([]punch.Punch, 0, len(punches))
	for _, p := range punches {
		if p.EmployeeID != employeeID {
			kept = append(kept, p)
		}
	}
	return kept
}
