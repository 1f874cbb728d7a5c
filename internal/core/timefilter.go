package core

import "time"

const (
	FilterAll       TimeFilter = "all"
	FilterToday     TimeFilter = "today"
	FilterYesterday TimeFilter = "yesterday"
	FilterWeekly    TimeFilter = "weekly"
	FilterMonthly   TimeFilter = "monthly"
)

// TimeFilter selects a date-range inclusion rule relative to "now".
type TimeFilter string

func (f TimeFilter) Valid() bool {
	switch f {
	case FilterAll, FilterToday, FilterYesterday, FilterWeekly, FilterMonthly:
		return true
	}
	return false
}

// MatchesTimeFilter decides whether a transaction dated d belongs to the
// window selected by f, relative to now.
//
// The weekly window is a trailing rolling 7x24h span (inclusive of the
// boundary instant), while monthly is a calendar month+year bucket. The
// asymmetry is deliberate and must not be normalized.
//
// A zero date matches only FilterAll.
func MatchesTimeFilter(d Date, now time.Time, f TimeFilter) bool {
	if f == FilterAll {
		return true
	}
	if d.IsZero() {
		return false
	}
	switch f {
	case FilterToday:
		return d.SameDay(now)
	case FilterYesterday:
		return d.SameDay(now.AddDate(0, 0, -1))
	case FilterWeekly:
		cutoff := now.Add(-7 * 24 * time.Hour)
		t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
		return !t.Before(cutoff)
	case FilterMonthly:
		return d.Month() == now.Month() && d.Year() == now.Year()
	}
	return false
}
