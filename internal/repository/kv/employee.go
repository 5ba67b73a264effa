package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type employeeRecord struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Role                string          `json:"role"`
	ContractHoursPerDay float64         `json:"contract_hours_per_day"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	Active              bool            `json:"active"`
	IsAdmin             bool            `json:"is_admin"`
	PINHash             string          `json:"pin_hash"`
	ExpectedStartTime   *string         `json:"expected_start_time,omitempty"`
	CreatedAt           int64           `json:"created_at"`
}

func toEmployeeRecord(e employee.Employee) employeeRecord {
	return employeeRecord{
		ID:                  e.ID,
		Name:                e.Name,
		Email:               e.Email,
		Role:                e.Role,
		ContractHoursPerDay: e.ContractHoursPerDay,
		HourlyRate:          e.HourlyRate,
		Active:              e.Active,
		IsAdmin:             e.IsAdmin,
		PINHash:             e.PINHash,
		ExpectedStartTime:   e.ExpectedStartTime,
		CreatedAt:           e.CreatedAt.UnixMilli(),
	}
}

func (r employeeRecord) toEmployee() employee.Employee {
	return employee.Employee{
		ID:                  r.ID,
		Name:                r.Name,
		Email:               r.Email,
		Role:                r.Role,
		ContractHoursPerDay: r.ContractHoursPerDay,
		HourlyRate:          r.HourlyRate,
		Active:              r.Active,
		IsAdmin:             r.IsAdmin,
		PINHash:             r.PINHash,
		ExpectedStartTime:   r.ExpectedStartTime,
		CreatedAt:           time.UnixMilli(r.CreatedAt),
	}
}

type employeeRepositoryImpl struct {
	db *DB
}

func NewEmployeeRepository(db *DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func (e *employeeRepositoryImpl) all(ctx context.Context) ([]employeeRecord, error) {
	var records []employeeRecord
	if err := e.db.load(ctx, KeyEmployees, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	defer e.db.lock(ctx)()

	records, err := e.all(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	if newEmployee.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
		}
		newEmployee.ID = id.String()
	}
	for _, r := range records {
		if r.ID == newEmployee.ID {
			return employee.Employee{}, fmt.Errorf("employee %s already exists", newEmployee.ID)
		}
	}
	if newEmployee.CreatedAt.IsZero() {
		newEmployee.CreatedAt = time.Now()
	}

	records = append(records, toEmployeeRecord(newEmployee))
	if err := e.db.save(ctx, KeyEmployees, records); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer e.db.lock(ctx)()

	records, err := e.all(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r.toEmployee(), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	defer e.db.lock(ctx)()

	records, err := e.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]employee.Employee, 0, len(records))
	for _, r := range records {
		out = append(out, r.toEmployee())
	}
	return out, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	defer e.db.lock(ctx)()

	records, err := e.all(ctx)
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.ID == updated.ID {
			updated.CreatedAt = time.UnixMilli(r.CreatedAt)
			records[i] = toEmployeeRecord(updated)
			if err := e.db.save(ctx, KeyEmployees, records); err != nil {
				return fmt.Errorf("failed to update employee: %w", err)
			}
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	defer e.db.lock(ctx)()

	records, err := e.all(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	found := false
	for _, r := range records {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return employee.ErrEmployeeNotFound
	}

	if err := e.db.save(ctx, KeyEmployees, kept); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// Count implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Count(ctx context.Context) (int, error) {
	defer e.db.lock(ctx)()

	records, err := e.all(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
