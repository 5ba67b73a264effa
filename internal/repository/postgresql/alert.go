package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/database"
)

type alertRepositoryImpl struct {
	db *database.DB
}

func NewAlertRepository(db *database.DB) alert.AlertRepository {
	return &alertRepositoryImpl{db: db}
}

// InsertIfAbsent implements alert.AlertRepository.
func (a *alertRepositoryImpl) InsertIfAbsent(ctx context.Context, newAlert alert.Alert) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO alerts (id, kind, employee_id, employee_name, date, message, is_read, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT DO NOTHING
	`
	tag, err := q.Exec(ctx, query,
		newAlert.ID,
		newAlert.Kind,
		newAlert.EmployeeID,
		newAlert.EmployeeName,
		newAlert.Date,
		newAlert.Message,
		newAlert.IsRead,
		newAlert.Details,
		newAlert.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List implements alert.AlertRepository.
func (a *alertRepositoryImpl) List(ctx context.Context, filter alert.AlertFilter) ([]alert.Alert, error) {
	q := GetQuerier(ctx, a.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.UnreadOnly {
		conditions = append(conditions, "is_read = FALSE")
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		args = append(args, kinds)
		conditions = append(conditions, fmt.Sprintf("kind = ANY($%d)", len(args)))
	}

	query := `
		SELECT id, kind, employee_id, employee_name, date, message, is_read, details, created_at
		FROM alerts
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []alert.Alert{}
	for rows.Next() {
		var al alert.Alert
		if err := rows.Scan(
			&al.ID, &al.Kind, &al.EmployeeID, &al.EmployeeName, &al.Date,
			&al.Message, &al.IsRead, &al.Details, &al.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, al)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return alerts, nil
}

// MarkAsRead implements alert.AlertRepository.
func (a *alertRepositoryImpl) MarkAsRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `UPDATE alerts SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark alert as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return alert.ErrAlertNotFound
	}
	return nil
}

// DeleteByEmployee implements alert.AlertRepository.
func (a *alertRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, `DELETE FROM alerts WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete alerts: %w", err)
	}
	return nil
}
