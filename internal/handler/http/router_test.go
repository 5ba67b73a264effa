package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/connectivity"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/kvstore"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/chronos-backend-go/internal/repository/kv"
	alertService "github.com/cmlabs-hris/chronos-backend-go/internal/service/alert"
	authService "github.com/cmlabs-hris/chronos-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/chronos-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/chronos-backend-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/chronos-backend-go/internal/service/payroll"
	punchService "github.com/cmlabs-hris/chronos-backend-go/internal/service/punch"
	syncService "github.com/cmlabs-hris/chronos-backend-go/internal/service/punchsync"
	settingService "github.com/cmlabs-hris/chronos-backend-go/internal/service/setting"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// newTestRouter wires every handler over the in-memory store with the
// connectivity monitor offline, so punches stay queued.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	db := kv.NewDB(kvstore.NewMemory())
	employeeRepo := kv.NewEmployeeRepository(db)
	punchRepo := kv.NewPunchRepository(db)
	alertRepo := kv.NewAlertRepository(db)
	settingRepo := kv.NewSettingRepository(db)

	clk := clock.Fixed{At: time.Date(2026, time.October, 16, 10, 0, 0, 0, time.FixedZone("BRT", -3*60*60))}
	monitor := connectivity.NewMonitor(false)
	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, punchRepo, alertRepo, JWTService, clk, employeeService.WithPINCost(bcrypt.MinCost))
	alertSvc := alertService.NewAlertService(alertRepo, employeeRepo, punchRepo, settingRepo, clk, hub)
	syncer := syncService.NewSyncer(punchRepo, monitor, clk, 10*time.Millisecond)
	t.Cleanup(syncer.Wait)
	office := utils.Geofence{Latitude: -23.5505, Longitude: -46.6333, RadiusMeters: 1000}

	return NewRouter(
		JWTService,
		RouterOptions{FrontendURL: "http://localhost:3000", Env: "test", LogLevel: slog.LevelError},
		NewAuthHandler(authService.NewAuthService(employeeSvc, JWTService)),
		NewEmployeeHandler(employeeSvc),
		NewPunchHandler(punchService.NewPunchService(punchRepo, employeeRepo, alertSvc, syncer, monitor, office, clk)),
		NewAlertHandler(alertSvc, JWTService, hub),
		NewDashboardHandler(dashboardService.NewDashboardService(alertSvc, employeeRepo, punchRepo, settingRepo, clk)),
		NewReportHandler(payrollService.NewPayrollService(employeeRepo, punchRepo, clk)),
		NewSettingHandler(settingService.NewSettingService(settingRepo)),
		NewSyncHandler(syncer),
	)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func login(t *testing.T, router http.Handler, pin string) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"pin": pin})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestRouter_LoginAndMe(t *testing.T) {
	router := newTestRouter(t)

	token := login(t, router, fixtures.DefaultAdminPIN)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		ID      string `json:"id"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &me))
	assert.Equal(t, fixtures.DefaultAdminID, me.ID)
	assert.True(t, me.IsAdmin)
}

func TestRouter_LoginErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"pin": "9999"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"pin": "12a"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "pin")

	rec = doRequest(t, router, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Logout(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, fixtures.DefaultAdminPIN)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_EmployeeAdministration(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, fixtures.DefaultAdminPIN)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/employees", adminToken, map[string]interface{}{
		"name":        "Ana Souza",
		"email":       "ana@ponto.pro",
		"role":        "Analista",
		"hourly_rate": "20.00",
		"pin":         "4321",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID                  string  `json:"id"`
		ContractHoursPerDay float64 `json:"contract_hours_per_day"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	assert.Equal(t, 8.0, created.ContractHoursPerDay)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/employees", adminToken, map[string]interface{}{
		"name": "Bruno",
		"pin":  "4321",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/employees", adminToken, map[string]interface{}{
		"pin": "12",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/employees/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/employees/missing", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Non-admins are kept out of the admin area
	employeeToken := login(t, router, "4321")
	rec = doRequest(t, router, http.MethodGet, "/api/v1/employees", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doRequest(t, router, http.MethodGet, "/api/v1/dashboard", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/employees/"+fixtures.DefaultAdminID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/employees/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/employees", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.Len(t, list, 1)
}

func TestRouter_DemotedAdminTokenIsRejected(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, fixtures.DefaultAdminPIN)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/employees", adminToken, map[string]interface{}{
		"name":                   "Bia",
		"pin":                    "5555",
		"is_admin":               true,
		"contract_hours_per_day": 6,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	biaToken := login(t, router, "5555")
	rec = doRequest(t, router, http.MethodGet, "/api/v1/employees", biaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// contract_hours_per_day omitted
	rec = doRequest(t, router, http.MethodPut, "/api/v1/employees/"+created.ID, adminToken, map[string]interface{}{
		"name":     "Bia",
		"is_admin": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		IsAdmin             bool    `json:"is_admin"`
		ContractHoursPerDay float64 `json:"contract_hours_per_day"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	assert.False(t, updated.IsAdmin)
	assert.Equal(t, 6.0, updated.ContractHoursPerDay)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/employees", biaToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doRequest(t, router, http.MethodGet, "/api/v1/me", biaToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/employees", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PunchFlow(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, fixtures.DefaultAdminPIN)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/punches", token, map[string]interface{}{
		"type":      "IN",
		"pin":       fixtures.DefaultAdminPIN,
		"latitude":  -23.5505,
		"longitude": -46.6333,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var recorded struct {
		Punch struct {
			Type     string `json:"type"`
			Location *struct {
				IsAuthorized bool `json:"is_authorized"`
			} `json:"location"`
		} `json:"punch"`
		QueuedForSync bool `json:"queued_for_sync"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &recorded))
	assert.Equal(t, "IN", recorded.Punch.Type)
	require.NotNil(t, recorded.Punch.Location)
	assert.True(t, recorded.Punch.Location.IsAuthorized)
	assert.True(t, recorded.QueuedForSync)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/punches", token, map[string]interface{}{
		"type": "BREAK_START",
		"pin":  "9999",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/punches", token, map[string]interface{}{
		"type": "LUNCH",
		"pin":  fixtures.DefaultAdminPIN,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/punches/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var today struct {
		Punches     []map[string]interface{} `json:"punches"`
		OnBreak     bool                     `json:"on_break"`
		PendingSync int                      `json:"pending_sync"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &today))
	assert.Len(t, today.Punches, 1)
	assert.False(t, today.OnBreak)
	assert.Equal(t, 1, today.PendingSync)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/sync/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending_count":1`)

	rec = doRequest(t, router, http.MethodPut, "/api/v1/sync/connectivity", token, map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_SettingsAndDashboard(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, fixtures.DefaultAdminPIN)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/settings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"delay_tolerance":15`)

	rec = doRequest(t, router, http.MethodPut, "/api/v1/settings", token, map[string]int{"delay_tolerance": 30})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"delay_tolerance":30`)

	rec = doRequest(t, router, http.MethodPut, "/api/v1/settings", token, map[string]int{"delay_tolerance": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/v1/alerts?unread_only=true", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/alerts?type=delay,OVERTIME", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/alerts?type=LUNCH", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/api/v1/alerts/unknown/read", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PayrollExport(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, fixtures.DefaultAdminPIN)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/reports/payroll?month=2026-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"business_days":22`)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/reports/payroll?month=10-2026", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/reports/payroll/export?month=2026-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio_pagamentos_2026-10.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Funcionário,Cargo,Horas Trabalhadas"))
}

func TestRouter_AlertStreamRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/alerts/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/alerts/stream?token=bogus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, router, fixtures.DefaultAdminPIN)
	rec = doRequest(t, router, http.MethodGet, "/api/v1/alerts/sse-token", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"expires_in":300`)
}
