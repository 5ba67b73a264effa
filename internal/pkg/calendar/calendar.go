// Package calendar holds the local calendar-day arithmetic shared by the
// alert evaluators and the payroll report. Every function works in the
// location carried by its time.Time argument.
package calendar

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
	ClockLayout     = "15:04"
	ShortDateLayout = "02/01"
)

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns local midnight of the following calendar day (exclusive bound).
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateKey formats a calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ShortDate formats a calendar day as DD/MM, the form used in report day lists.
func ShortDate(t time.Time) string {
	return t.Format(ShortDateLayout)
}

// TrailingDays returns the n calendar days before now's day, most recent
// first: today-1, today-2, ..., today-n. The current day is never included.
func TrailingDays(now time.Time, n int) []time.Time {
	today := StartOfDay(now)
	days := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

// LastDays returns the n calendar days ending with now's day, oldest first.
func LastDays(now time.Time, n int) []time.Time {
	today := StartOfDay(now)
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

// MonthDays returns every calendar day of the month containing t.
func MonthDays(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	var days []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// BusinessDays counts the non-weekend days in days.
func BusinessDays(days []time.Time) int {
	count := 0
	for _, d := range days {
		if !IsWeekend(d) {
			count++
		}
	}
	return count
}

// ParseMonth parses YYYY-MM into the first instant of that month in loc.
func ParseMonth(month string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, month, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}

// At applies an HH:mm clock time to day's calendar date in day's location.
func At(day time.Time, clockTime string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, clockTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clockTime, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}

// MinutesBetween returns whole minutes from a to b, truncated toward zero.
func MinutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}
