package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

const punchColumns = `id, employee_id, occurred_at, kind, synced, latitude, longitude, location_authorized`

func scanPunches(rows pgx.Rows) ([]punch.Punch, error) {
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var (
			p          punch.Punch
			lat, lng   *float64
			authorized *bool
		)
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Timestamp, &p.Kind, &p.Synced, &lat, &lng, &authorized); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		if lat != nil && lng != nil {
			p.Location = &punch.Location{Latitude: *lat, Longitude: *lng}
			if authorized != nil {
				p.Location.IsAuthorized = *authorized
			}
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return punches, nil
}

// Append implements punch.PunchRepository.
func (p *punchRepositoryImpl) Append(ctx context.Context, newPunch punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, p.db)

	if newPunch.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return punch.Punch{}, fmt.Errorf("failed to generate punch id: %w", err)
		}
		newPunch.ID = id.String()
	}

	var lat, lng *float64
	var authorized *bool
	if newPunch.Location != nil {
		lat, lng = &newPunch.Location.Latitude, &newPunch.Location.Longitude
		authorized = &newPunch.Location.IsAuthorized
	}

	query := `
		INSERT INTO punches (id, employee_id, occurred_at, kind, synced, latitude, longitude, location_authorized)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		newPunch.ID, newPunch.EmployeeID, newPunch.Timestamp, newPunch.Kind, newPunch.Synced,
		lat, lng, authorized,
	)
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to append punch: %w", err)
	}
	return newPunch, nil
}

// ListByEmployeeBetween implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE employee_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY seq ASC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee punches: %w", err)
	}
	return scanPunches(rows)
}

// ListBetween implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY seq ASC
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	return scanPunches(rows)
}

// ListUnsynced implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListUnsynced(ctx context.Context) ([]punch.Punch, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + punchColumns + ` FROM punches WHERE synced = FALSE ORDER BY seq ASC`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsynced punches: %w", err)
	}
	return scanPunches(rows)
}

// CountUnsynced implements punch.PunchRepository.
func (p *punchRepositoryImpl) CountUnsynced(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, p.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM punches WHERE synced = FALSE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unsynced punches: %w", err)
	}
	return count, nil
}

// MarkSynced implements punch.PunchRepository.
func (p *punchRepositoryImpl) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, p.db)

	if _, err := q.Exec(ctx, `UPDATE punches SET synced = TRUE WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to mark punches synced: %w", err)
	}
	return nil
}

// DeleteByEmployee implements punch.PunchRepository.
func (p *punchRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, p.db)

	if _, err := q.Exec(ctx, `DELETE FROM punches WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete punches: %w", err)
	}
	return nil
}
