// Package period holds the calendar arithmetic shared by budgets and reports:
// deriving a budget's end date from its period, and producing the month
// windows that reports aggregate over.
package period

import (
	"time"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/models"
)

// EndDate returns the end of a budget that starts at start and renews every p.
//
// Monthly and yearly periods move the calendar month (or year) forward and
// clamp the day to the length of the target month, so Jan 31 becomes Feb 28
// (or Feb 29) and Feb 29 becomes Feb 28 in a non-leap year. Time of day and
// location are preserved.
func EndDate(start time.Time, p models.BudgetPeriod) (time.Time, error) {
	switch p {
	case models.BudgetPeriodWeekly:
		return start.AddDate(0, 0, 7), nil
	case models.BudgetPeriodMonthly:
		return addMonthsClamped(start, 1), nil
	case models.BudgetPeriodYearly:
		return addMonthsClamped(start, 12), nil
	}
	return time.Time{}, apperrors.ErrInvalidPeriod
}

// Valid reports whether p is a period EndDate accepts.
func Valid(p models.BudgetPeriod) bool {
	switch p {
	case models.BudgetPeriodWeekly, models.BudgetPeriodMonthly, models.BudgetPeriodYearly:
		return true
	}
	return false
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
