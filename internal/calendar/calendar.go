// Package calendar holds the date arithmetic used by billing cycles,
// installment spreads and recurrence projection. Every month rollover and
// short-month clamp goes through this package.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

// Layout is the at-rest and wire format for dates.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Parse reads a yyyy-MM-dd string component by component. It never goes
// through a time zone, so "2024-07-01" is always the first of July.
func Parse(s string) (civil.Date, error) {
	if len(s) != len(Layout) || s[4] != '-' || s[7] != '-' {
		return civil.Date{}, fmt.Errorf("%w: %q is not yyyy-MM-dd", ErrInvalidDate, s)
	}

	if !digits(s[0:4]) || !digits(s[5:7]) || !digits(s[8:10]) {
		return civil.Date{}, fmt.Errorf("%w: %q is not yyyy-MM-dd", ErrInvalidDate, s)
	}

	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: year in %q", ErrInvalidDate, s)
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil || month < 1 || month > 12 {
		return civil.Date{}, fmt.Errorf("%w: month in %q", ErrInvalidDate, s)
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil || day < 1 || day > DaysIn(year, time.Month(month)) {
		return civil.Date{}, fmt.Errorf("%w: day in %q", ErrInvalidDate, s)
	}

	return civil.Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// digits reports whether s is all ASCII digits. strconv.Atoi alone would
// accept a sign.
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Format renders d as yyyy-MM-dd.
func Format(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Today is the calendar date of now in loc. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Clamp builds the date for day in the given month. Months outside 1..12
// roll the year (13 is January of the next year, 0 is December of the
// previous one). Days past the end of the month clamp to its last day and
// days below 1 clamp to the first.
func Clamp(year int, month time.Month, day int) civil.Date {
	y, m := normalizeMonth(year, int(month))
	if day < 1 {
		day = 1
	}
	if last := DaysIn(y, m); day > last {
		day = last
	}
	return civil.Date{Year: y, Month: m, Day: day}
}

func normalizeMonth(year, month int) (int, time.Month) {
	m := month - 1
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return year, time.Month(m + 1)
}

// AddMonths moves d by n calendar months keeping its day of month, clamped
// to the length of the target month (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(d civil.Date, n int) civil.Date {
	return Clamp(d.Year, d.Month+time.Month(n), d.Day)
}

// Compare returns -1, 0 or 1 as a is before, equal to or after b.
func Compare(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// InWindow reports whether after < d <= through.
func InWindow(d, after, through civil.Date) bool {
	return d.After(after) && !d.After(through)
}

// MonthBounds returns the first and last dates of the given month.
func MonthBounds(year int, month time.Month) (first, last civil.Date) {
	first = Clamp(year, month, 1)
	last = Clamp(first.Year, first.Month, DaysIn(first.Year, first.Month))
	return first, last
}
