package dateutil

import (
	"time"
)

// YearStart returns January 1 of the given tax year (UTC).
func YearStart(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns December 31 of the given tax year (UTC, midnight).
func YearEnd(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

// MidYear returns July 1 of the given tax year.
func MidYear(year int) time.Time {
	return time.Date(year, 7, 1, 0, 0, 0, 0, time.UTC)
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the date for a 1-based day index within the year.
func DayOfYear(year, day int) time.Time {
	return YearStart(year).AddDate(0, 0, day-1)
}

// EveryNMonths returns the first day of every n-th month of the year,
// starting in January. n must divide 12.
func EveryNMonths(year, n int) []time.Time {
	if n <= 0 || 12%n != 0 {
		return nil
	}
	dates := make([]time.Time, 0, 12/n)
	for m := 1; m <= 12; m += n {
		dates = append(dates, time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC))
	}
	return dates
}

// EveryDay returns each calendar day of the year.
func EveryDay(year int) []time.Time {
	n := DaysInYear(year)
	dates := make([]time.Time, n)
	for d := 0; d < n; d++ {
		dates[d] = YearStart(year).AddDate(0, 0, d)
	}
	return dates
}

// SameYear reports whether t falls inside the tax year.
func SameYear(t time.Time, year int) bool {
	return t.Year() == year
}
