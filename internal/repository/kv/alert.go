package kv

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
)

type alertRepositoryImpl struct {
	db *DB
}

func NewAlertRepository(db *DB) alert.AlertRepository {
	return &alertRepositoryImpl{db: db}
}

func (a *alertRepositoryImpl) all(ctx context.Context) ([]alert.Alert, error) {
	var alerts []alert.Alert
	if err := a.db.load(ctx, KeyAlerts, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// InsertIfAbsent implements alert.AlertRepository. New alerts are kept at the
// front so the stored order is newest first.
func (a *alertRepositoryImpl) InsertIfAbsent(ctx context.Context, newAlert alert.Alert) (bool, error) {
	defer a.db.lock(ctx)()

	alerts, err := a.all(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range alerts {
		if existing.SameKey(newAlert) {
			return false, nil
		}
	}

	alerts = append([]alert.Alert{newAlert}, alerts...)
	if err := a.db.save(ctx, KeyAlerts, alerts); err != nil {
		return false, fmt.Errorf("failed to insert alert: %w", err)
	}
	return true, nil
}

// List implements alert.AlertRepository.
func (a *alertRepositoryImpl) List(ctx context.Context, filter alert.AlertFilter) ([]alert.Alert, error) {
	defer a.db.lock(ctx)()

	alerts, err := a.all(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]alert.Alert, 0, len(alerts))
	for _, al := range alerts {
		if filter.Matches(al) {
			out = append(out, al)
		}
	}
	return out, nil
}

// MarkAsRead implements alert.AlertRepository.
func (a *alertRepositoryImpl) MarkAsRead(ctx context.Context, id string) error {
	defer a.db.lock(ctx)()

	alerts, err := a.all(ctx)
	if err != nil {
		return err
	}
	for i := range alerts {
		if alerts[i].ID == id {
			alerts[i].IsRead = true
			if err := a.db.save(ctx, KeyAlerts, alerts); err != nil {
				return fmt.Errorf("failed to mark alert as read: %w", err)
			}
			return nil
		}
	}
	return alert.ErrAlertNotFound
}

// DeleteByEmployee implements alert.AlertRepository.
func (a *alertRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	defer a.db.lock(ctx)()

	alerts, err := a.all(ctx)
	if err != nil {
		return err
	}
	if err := a.db.save(ctx, KeyAlerts, withoutEmployeeAlerts(alerts, employeeID)); err != nil {
		return fmt.Errorf("failed to delete alerts: %w", err)
	}
	return nil
}

func withoutEmployeeAlerts(alerts []alert.Alert, employeeID string) []alert.Alert {
	kept := make([]alert.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.EmployeeID != employeeID {
			kept = append(kept, a)
		}
	}
	return kept
}
