package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/config"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
	appHTTP "github.com/cmlabs-hris/chronos-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/connectivity"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/kvstore"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/chronos-backend-go/internal/repository/kv"
	"github.com/cmlabs-hris/chronos-backend-go/internal/repository/postgresql"
	alertService "github.com/cmlabs-hris/chronos-backend-go/internal/service/alert"
	serviceAuth "github.com/cmlabs-hris/chronos-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/chronos-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/chronos-backend-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/chronos-backend-go/internal/service/payroll"
	punchService "github.com/cmlabs-hris/chronos-backend-go/internal/service/punch"
	syncService "github.com/cmlabs-hris/chronos-backend-go/internal/service/punchsync"
	settingService "github.com/cmlabs-hris/chronos-backend-go/internal/service/setting"
)

type repositories struct {
	tx       database.Transactor
	employee employee.EmployeeRepository
	punch    punch.PunchRepository
	alert    alert.AlertRepository
	setting  setting.SettingRepository
	close    func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDBWithOptions(ctx, cfg.DatabaseURL(), database.PoolOptions{})
		if err != nil {
			return repositories{}, fmt.Errorf("connect to database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("migrate database: %w", err)
		}
		return repositories{
			tx:       postgresql.NewTransactor(db),
			employee: postgresql.NewEmployeeRepository(db),
			punch:    postgresql.NewPunchRepository(db),
			alert:    postgresql.NewAlertRepository(db),
			setting:  postgresql.NewSettingRepository(db),
			close:    db.Close,
		}, nil

	case config.StorageDriverSQLite, config.StorageDriverMemory:
		var store kvstore.Store = kvstore.NewMemory()
		if cfg.Storage.Driver == config.StorageDriverSQLite {
			sqliteStore, err := kvstore.NewSQLite(cfg.Storage.SQLitePath)
			if err != nil {
				return repositories{}, fmt.Errorf("open sqlite store: %w", err)
			}
			store = sqliteStore
		}
		db := kv.NewDB(store)
		return repositories{
			tx:       db,
			employee: kv.NewEmployeeRepository(db),
			punch:    kv.NewPunchRepository(db),
			alert:    kv.NewAlertRepository(db),
			setting:  kv.NewSettingRepository(db),
			close: func() {
				if err := db.Close(); err != nil {
					slog.Error("Failed to close store", "error", err)
				}
			},
		}, nil
	}
	return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("Error opening storage: ", err)
	}
	defer repos.close()

	clk := clock.NewSystemClock(clock.LoadLocation(cfg.App.Timezone))
	monitor := connectivity.NewMonitor(true)
	hub := sse.NewHub()
	office := utils.Geofence{
		Latitude:     cfg.Office.Latitude,
		Longitude:    cfg.Office.Longitude,
		RadiusMeters: cfg.Office.RadiusMeters,
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	employeeSvc := employeeService.NewEmployeeService(repos.tx, repos.employee, repos.punch, repos.alert, JWTService, clk)
	authSvc := serviceAuth.NewAuthService(employeeSvc, JWTService)
	alertSvc := alertService.NewAlertService(repos.alert, repos.employee, repos.punch, repos.setting, clk, hub)
	syncer := syncService.NewSyncer(repos.punch, monitor, clk, cfg.Sync.Delay)
	punchSvc := punchService.NewPunchService(repos.punch, repos.employee, alertSvc, syncer, monitor, office, clk)
	dashboardSvc := dashboardService.NewDashboardService(alertSvc, repos.employee, repos.punch, repos.setting, clk)
	payrollSvc := payrollService.NewPayrollService(repos.employee, repos.punch, clk)
	settingSvc := settingService.NewSettingService(repos.setting)

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(syncer, JWTService, cfg.Sync.Interval).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterOptions{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
			LogLevel:    cfg.SlogLevel(),
		},
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewPunchHandler(punchSvc),
		appHTTP.NewAlertHandler(alertSvc, JWTService, hub),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewReportHandler(payrollSvc),
		appHTTP.NewSettingHandler(settingSvc),
		appHTTP.NewSyncHandler(syncer),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Driver, "timezone", clk.Location().String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
	syncer.Wait()
}
