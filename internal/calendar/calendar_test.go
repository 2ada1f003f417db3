package calendar

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestParse_Valid(t *testing.T) {
	d, err := Parse("2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.July, 1), d)

	d, err = Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), d)
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"2024-7-01",
		"2024/07/01",
		"2024-13-01",
		"2024-00-10",
		"2023-02-29",
		"2024-04-31",
		"2024-07-01T00:00:00Z",
		"abcd-07-01",
		"+024-07-01",
		"-001-07-01",
		"2024-+7-01",
		"2024-07-+1",
		"2024-07- 1",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2024-07-01", Format(date(2024, time.July, 1)))
	assert.Equal(t, "0999-12-31", Format(date(999, time.December, 31)))
}

func TestToday_UsesLocation(t *testing.T) {
	// 02:00 UTC on the 15th is still the 14th in Sao Paulo (UTC-3).
	now := time.Date(2024, time.July, 15, 2, 0, 0, 0, time.UTC)
	loc := time.FixedZone("BRT", -3*60*60)

	assert.Equal(t, date(2024, time.July, 14), Today(now, loc))
	assert.Equal(t, date(2024, time.July, 15), Today(now, nil))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2024, time.January))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2023, time.February))
	assert.Equal(t, 28, DaysIn(1900, time.February))
	assert.Equal(t, 29, DaysIn(2000, time.February))
	assert.Equal(t, 30, DaysIn(2024, time.April))
}

func TestClamp_MonthRollover(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 10), Clamp(2024, 13, 10))
	assert.Equal(t, date(2023, time.December, 10), Clamp(2024, 0, 10))
	assert.Equal(t, date(2022, time.December, 10), Clamp(2024, -12, 10))
	assert.Equal(t, date(2026, time.February, 10), Clamp(2024, 26, 10))
}

func TestClamp_ShortMonths(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), Clamp(2024, time.February, 31))
	assert.Equal(t, date(2023, time.February, 28), Clamp(2023, time.February, 30))
	assert.Equal(t, date(2024, time.April, 30), Clamp(2024, time.April, 31))
	assert.Equal(t, date(2024, time.April, 1), Clamp(2024, time.April, 0))
}

func TestAddMonths(t *testing.T) {
	start := date(2024, time.January, 31)

	assert.Equal(t, date(2024, time.February, 29), AddMonths(start, 1))
	assert.Equal(t, date(2024, time.March, 31), AddMonths(start, 2))
	assert.Equal(t, date(2025, time.January, 31), AddMonths(start, 12))
	assert.Equal(t, date(2023, time.December, 31), AddMonths(start, -1))
}

func TestCompareAndWindow(t *testing.T) {
	a := date(2024, time.June, 28)
	b := date(2024, time.July, 28)

	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))

	assert.False(t, InWindow(a, a, b), "lower bound is exclusive")
	assert.True(t, InWindow(a.AddDays(1), a, b))
	assert.True(t, InWindow(b, a, b), "upper bound is inclusive")
	assert.False(t, InWindow(b.AddDays(1), a, b))
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, date(2024, time.February, 1), first)
	assert.Equal(t, date(2024, time.February, 29), last)

	first, last = MonthBounds(2024, 13)
	assert.Equal(t, date(2025, time.January, 1), first)
	assert.Equal(t, date(2025, time.January, 31), last)
}
