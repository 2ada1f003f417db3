// Package recurrence projects recurring transactions onto calendar months.
// Projections are computed for display only and are never stored.
package recurrence

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/finance"
)

// Entry is one line of a month view.
type Entry struct {
	Date        civil.Date
	Transaction finance.Transaction
	Projected   bool
}

// Occurrences returns the projected dates of tx within [first, last].
// Only dates after tx.Date are returned; the stored row covers its own date.
func Occurrences(tx finance.Transaction, first, last civil.Date) []civil.Date {
	if !tx.IsRecurring || last.Before(first) {
		return nil
	}

	var dates []civil.Date
	keep := func(d civil.Date) {
		if d.After(tx.Date) && calendar.Compare(d, first) >= 0 && !d.After(last) {
			dates = append(dates, d)
		}
	}

	switch tx.Frequency {
	case finance.FrequencyMonthly:
		for m := first; !m.After(last); m = calendar.Clamp(m.Year, m.Month+1, 1) {
			keep(calendar.Clamp(m.Year, m.Month, tx.Date.Day))
		}
	case finance.FrequencyAnnual:
		for y := first.Year; y <= last.Year; y++ {
			keep(calendar.Clamp(y, tx.Date.Month, tx.Date.Day))
		}
	case finance.FrequencyWeekly:
		start := tx.Date.AddDays(7)
		if start.Before(first) {
			behind := first.DaysSince(tx.Date)
			start = first.AddDays((7 - behind%7) % 7)
		}
		for d := start; !d.After(last); d = d.AddDays(7) {
			keep(d)
		}
	case finance.FrequencyDaily:
		start := tx.Date.AddDays(1)
		if start.Before(first) {
			start = first
		}
		for d := start; !d.After(last); d = d.AddDays(1) {
			keep(d)
		}
	}
	return dates
}

// MonthView lists the stored transactions dated in the month together with
// the projected occurrences of recurring ones, ordered by day.
func MonthView(txs []finance.Transaction, year int, month time.Month) []Entry {
	first, last := calendar.MonthBounds(year, month)

	entries := []Entry{}
	for _, tx := range txs {
		if calendar.Compare(tx.Date, first) >= 0 && !tx.Date.After(last) {
			entries = append(entries, Entry{Date: tx.Date, Transaction: tx})
		}
		for _, d := range Occurrences(tx, first, last) {
			entries = append(entries, Entry{Date: d, Transaction: tx, Projected: true})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}
