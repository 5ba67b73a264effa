package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/chronos-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment details the router logs and enforces.
type RouterOptions struct {
	FrontendURL string
	Env         string
	LogLevel    slog.Level
}

func NewRouter(
	JWTService jwt.Service,
	opts RouterOptions,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	punchHandler PunchHandler,
	alertHandler AlertHandler,
	dashboardHandler DashboardHandler,
	reportHandler ReportHandler,
	settingHandler SettingHandler,
	syncHandler SyncHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "chronos"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", authHandler.Logout)
			})
		})

		// The SSE token is checked by the handler itself
		r.Get("/alerts/stream", alertHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/me", authHandler.Me)

			r.Route("/punches", func(r chi.Router) {
				r.Post("/", punchHandler.Record)
				r.Get("/today", punchHandler.Today)
			})

			r.Route("/sync", func(r chi.Router) {
				r.Post("/", syncHandler.Trigger)
				r.Get("/status", syncHandler.Status)
				r.Put("/connectivity", syncHandler.SetConnectivity)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.ListEmployees)
					r.Post("/", employeeHandler.CreateEmployee)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", employeeHandler.GetEmployee)
						r.Put("/", employeeHandler.UpdateEmployee)
						r.Delete("/", employeeHandler.DeleteEmployee)
					})
				})

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", settingHandler.GetSettings)
					r.Put("/", settingHandler.UpdateSettings)
				})

				r.Get("/dashboard", dashboardHandler.GetDashboard)

				r.Route("/alerts", func(r chi.Router) {
					r.Get("/", alertHandler.List)
					r.Get("/sse-token", alertHandler.GetSSEToken)
					r.Patch("/{id}/read", alertHandler.MarkAsRead)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/payroll", reportHandler.GetPayrollReport)
					r.Get("/payroll/export", reportHandler.ExportPayrollReport)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "route not found", http.StatusNotFound)
	})
	return r
}
