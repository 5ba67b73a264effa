package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punchsync"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/connectivity"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// TodayLimit is the number of punches returned by Today.
const TodayLimit = 10

type PunchServiceImpl struct {
	punch.PunchRepository
	employee.EmployeeRepository
	alertService alert.AlertService
	syncer       punchsync.Service
	monitor      *connectivity.Monitor
	office       utils.Geofence
	clock        clock.Clock
}

func NewPunchService(
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	alertService alert.AlertService,
	syncer punchsync.Service,
	monitor *connectivity.Monitor,
	office utils.Geofence,
	clk clock.Clock,
) punch.PunchService {
	return &PunchServiceImpl{
		PunchRepository:    punchRepo,
		EmployeeRepository: employeeRepo,
		alertService:       alertService,
		syncer:             syncer,
		monitor:            monitor,
		office:             office,
		clock:              clk,
	}
}

// Record implements punch.PunchService.
func (s *PunchServiceImpl) Record(ctx context.Context, req punch.PunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(req.PIN)) != nil {
		return punch.PunchResponse{}, punch.ErrInvalidPIN
	}

	newPunch := punch.Punch{
		EmployeeID: emp.ID,
		Timestamp:  s.clock.Now(),
		Kind:       req.Kind,
	}

	var resp punch.PunchResponse
	if req.Latitude != nil && req.Longitude != nil {
		inside, distance := s.office.Contains(*req.Latitude, *req.Longitude)
		newPunch.Location = &punch.Location{
			Latitude:     *req.Latitude,
			Longitude:    *req.Longitude,
			IsAuthorized: inside,
		}
		resp.DistanceMeters = &distance
	}

	stored, err := s.PunchRepository.Append(ctx, newPunch)
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}
	resp.Punch = stored

	slog.Info("punch recorded",
		"employee_id", stored.EmployeeID,
		"type", stored.Kind,
		"has_location", stored.Location != nil,
	)

	if stored.Kind == punch.KindOut {
		if _, err := s.alertService.CheckOvertime(ctx, stored.EmployeeID, stored.Timestamp); err != nil {
			slog.Error("overtime check failed", "employee_id", stored.EmployeeID, "error", err)
		}
	}

	resp.QueuedForSync = !s.monitor.Online()
	if !resp.QueuedForSync {
		if _, err := s.syncer.Trigger(ctx); err != nil {
			slog.Warn("failed to trigger sync", "error", err)
		}
	}

	return resp, nil
}

// Today implements punch.PunchService.
func (s *PunchServiceImpl) Today(ctx context.Context, employeeID string) (punch.TodayResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return punch.TodayResponse{}, err
		}
		return punch.TodayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.clock.Now()
	punches, err := s.PunchRepository.ListByEmployeeBetween(ctx, employeeID, calendar.StartOfDay(now), calendar.EndOfDay(now))
	if err != nil {
		return punch.TodayResponse{}, fmt.Errorf("failed to list today's punches: %w", err)
	}
	punch.SortByTime(punches)

	pending, err := s.PunchRepository.CountUnsynced(ctx)
	if err != nil {
		return punch.TodayResponse{}, fmt.Errorf("failed to count pending punches: %w", err)
	}

	newest := make([]punch.Punch, 0, TodayLimit)
	for i := len(punches) - 1; i >= 0 && len(newest) < TodayLimit; i-- {
		newest = append(newest, punches[i])
	}

	return punch.TodayResponse{
		Punches:     newest,
		OnBreak:     len(newest) > 0 && newest[0].Kind == punch.KindBreakStart,
		WorkedHours: punch.WorkedHours(punches),
		PendingSync: pending,
	}, nil
}
