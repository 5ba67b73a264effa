package fixtures

import (
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
	"github.com/shopspring/decimal"
)

// ==========================================
// BOOTSTRAP ADMINISTRATOR
// ==========================================

const (
	DefaultAdminID    = "admin"
	DefaultAdminName  = "Administrador Principal"
	DefaultAdminEmail = "admin@ponto.pro"
	DefaultAdminRole  = "Diretoria"
	DefaultAdminPIN   = "1234"
)

// DefaultAdmin returns the administrator created when the employee collection
// is empty. The caller hashes DefaultAdminPIN into PINHash.
func DefaultAdmin(now time.Time) employee.Employee {
	return employee.Employee{
		ID:                  DefaultAdminID,
		Name:                DefaultAdminName,
		Email:               DefaultAdminEmail,
		Role:                DefaultAdminRole,
		ContractHoursPerDay: employee.DefaultContractHoursPerDay,
		HourlyRate:          decimal.Zero,
		Active:              true,
		IsAdmin:             true,
		CreatedAt:           now,
	}
}

// ==========================================
// SYSTEM CONFIG
// ==========================================

func DefaultSystemConfig() setting.SystemConfig {
	return setting.Default()
}
