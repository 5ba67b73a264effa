package payroll

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/payroll"
)

var csvHeader = []string{
	"Funcionário",
	"Cargo",
	"Horas Trabalhadas",
	"Horas Esperadas",
	"Balanço",
	"Valor/Hora",
	"Total a Pagar",
	"Faltas",
	"Incompletos",
}

// ExportFileName is the download name of the CSV for month (YYYY-MM).
func ExportFileName(month string) string {
	return fmt.Sprintf("relatorio_pagamentos_%s.csv", month)
}

// WriteCSV renders rows with day lists joined by "|".
func WriteCSV(rows []payroll.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.EmployeeName,
			r.Role,
			strconv.FormatFloat(r.TotalHours, 'f', 1, 64),
			strconv.FormatFloat(r.ExpectedHours, 'f', -1, 64),
			strconv.FormatFloat(r.BalanceHours, 'f', 1, 64),
			r.HourlyRate.StringFixed(2),
			r.TotalPayment.StringFixed(2),
			strings.Join(r.MissingDays, "|"),
			strings.Join(r.IncompleteDays, "|"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
