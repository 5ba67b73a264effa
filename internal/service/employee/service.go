package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db database.Transactor
	employee.EmployeeRepository
	punchRepo  punch.PunchRepository
	alertRepo  alert.AlertRepository
	jwtService jwt.Service
	clock      clock.Clock
	pinCost    int
}

type Option func(*EmployeeServiceImpl)

// WithPINCost overrides the bcrypt cost used for PIN hashes.
func WithPINCost(cost int) Option {
	return func(s *EmployeeServiceImpl) {
		s.pinCost = cost
	}
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	punchRepo punch.PunchRepository,
	alertRepo alert.AlertRepository,
	jwtService jwt.Service,
	clk clock.Clock,
	opts ...Option,
) employee.EmployeeService {
	s := &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepo,
		punchRepo:          punchRepo,
		alertRepo:          alertRepo,
		jwtService:         jwtService,
		clock:              clk,
		pinCost:            bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.ensurePINAvailable(ctx, req.PIN, ""); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := s.hashPIN(req.PIN)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		Name:                strings.TrimSpace(req.Name),
		Email:               strings.TrimSpace(req.Email),
		Role:                strings.TrimSpace(req.Role),
		ContractHoursPerDay: req.ContractHoursPerDay,
		HourlyRate:          req.HourlyRate,
		Active:              true,
		IsAdmin:             req.IsAdmin,
		PINHash:             hash,
		ExpectedStartTime:   normalizeStart(req.ExpectedStartTime),
		CreatedAt:           s.clock.Now(),
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "is_admin", created.IsAdmin)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	wasAdmin, wasActive := current.IsAdmin, current.Active

	current.Name = strings.TrimSpace(req.Name)
	current.Email = strings.TrimSpace(req.Email)
	current.Role = strings.TrimSpace(req.Role)
	if req.ContractHoursPerDay > 0 {
		current.ContractHoursPerDay = req.ContractHoursPerDay
	}
	current.HourlyRate = req.HourlyRate
	current.IsAdmin = req.IsAdmin
	current.ExpectedStartTime = normalizeStart(req.ExpectedStartTime)
	if req.Active != nil {
		current.Active = *req.Active
	}

	if req.PIN != nil {
		if err := s.ensurePINAvailable(ctx, *req.PIN, current.ID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		hash, err := s.hashPIN(*req.PIN)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		current.PINHash = hash
	}

	if err := s.EmployeeRepository.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	// Outstanding tokens carry the old is_admin claim and PIN identity.
	if current.IsAdmin != wasAdmin || (wasActive && !current.Active) || req.PIN != nil {
		s.jwtService.RevokeEmployee(current.ID, time.Now())
		slog.Info("employee sessions revoked", "employee_id", current.ID)
	}

	return employee.NewEmployeeResponse(current), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if actor, _ := claims["employee_id"].(string); actor == id {
			return employee.ErrCannotDeleteSelf
		}
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.punchRepo.DeleteByEmployee(ctx, id); err != nil {
			return fmt.Errorf("failed to delete employee punches: %w", err)
		}
		if err := s.alertRepo.DeleteByEmployee(ctx, id); err != nil {
			return fmt.Errorf("failed to delete employee alerts: %w", err)
		}
		return s.EmployeeRepository.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.jwtService.RevokeEmployee(id, time.Now())
	slog.Info("employee deleted", "employee_id", id)
	return nil
}

// FindByPIN implements employee.EmployeeService.
func (s *EmployeeServiceImpl) FindByPIN(ctx context.Context, pin string) (employee.Employee, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to list employees: %w", err)
	}

	for _, e := range employees {
		if pinMatches(e.PINHash, pin) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// EnsureDefaultAdmin implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	count, err := s.EmployeeRepository.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count employees: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := s.hashPIN(fixtures.DefaultAdminPIN)
	if err != nil {
		return false, err
	}

	admin := fixtures.DefaultAdmin(s.clock.Now())
	admin.PINHash = hash
	if _, err := s.EmployeeRepository.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}

	slog.Warn("default administrator created, change its PIN", "employee_id", admin.ID)
	return true, nil
}

func (s *EmployeeServiceImpl) ensurePINAvailable(ctx context.Context, pin, exceptID string) error {
	owner, err := s.FindByPIN(ctx, pin)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return err
	}
	if owner.ID != exceptID {
		return employee.ErrPINInUse
	}
	return nil
}

func (s *EmployeeServiceImpl) hashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), s.pinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

func pinMatches(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

func normalizeStart(start *string) *string {
	if start == nil || strings.TrimSpace(*start) == "" {
		return nil
	}
	v := strings.TrimSpace(*start)
	return &v
}
