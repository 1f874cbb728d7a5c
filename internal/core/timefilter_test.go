package core

import (
	"testing"
	"time"
)

func TestMatchesTimeFilter(t *testing.T) {
	now := time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   Date
		filter TimeFilter
		want   bool
	}{
		{"all matches anything", NewDate(1999, 7, 4), FilterAll, true},
		{"all matches zero date", Date{}, FilterAll, true},

		{"today same day", NewDate(2024, 1, 15), FilterToday, true},
		{"today previous day", NewDate(2024, 1, 14), FilterToday, false},
		{"yesterday", NewDate(2024, 1, 14), FilterYesterday, true},
		{"yesterday rejects today", NewDate(2024, 1, 15), FilterYesterday, false},
		{"yesterday rejects two days ago", NewDate(2024, 1, 13), FilterYesterday, false},

		{"weekly inside window", NewDate(2024, 1, 10), FilterWeekly, true},
		{"weekly future date", NewDate(2024, 1, 20), FilterWeekly, true},
		{"weekly outside window", NewDate(2024, 1, 7), FilterWeekly, false},

		{"monthly same month", NewDate(2024, 1, 1), FilterMonthly, true},
		{"monthly previous month", NewDate(2023, 12, 31), FilterMonthly, false},
		{"monthly same month other year", NewDate(2023, 1, 15), FilterMonthly, false},

		{"zero date excluded from today", Date{}, FilterToday, false},
		{"zero date excluded from weekly", Date{}, FilterWeekly, false},
		{"zero date excluded from monthly", Date{}, FilterMonthly, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesTimeFilter(tt.date, now, tt.filter); got != tt.want {
				t.Errorf("MatchesTimeFilter(%v, %v) = %v, want %v", tt.date, tt.filter, got, tt.want)
			}
		})
	}
}

// The weekly window is a rolling 7x24h span, inclusive of the boundary,
// while monthly is a calendar bucket. Both edges are pinned here.
func TestWeeklyRollingBoundary(t *testing.T) {
	now := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	if !MatchesTimeFilter(NewDate(2024, 1, 1), now, FilterWeekly) {
		t.Error("date exactly 7 days prior should be included")
	}
	if MatchesTimeFilter(NewDate(2023, 12, 31), now, FilterWeekly) {
		t.Error("date 8 days prior should be excluded")
	}
}

func TestMonthlyCalendarBoundary(t *testing.T) {
	now := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)

	if !MatchesTimeFilter(NewDate(2024, 1, 1), now, FilterMonthly) {
		t.Error("first of the month should be included at month end")
	}
	if MatchesTimeFilter(NewDate(2023, 12, 31), now, FilterMonthly) {
		t.Error("previous month should be excluded")
	}
}

func TestTimeFilterValid(t *testing.T) {
	for _, f := range []TimeFilter{FilterAll, FilterToday, FilterYesterday, FilterWeekly, FilterMonthly} {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	if TimeFilter("quarterly").Valid() {
		t.Error("unknown filter should be invalid")
	}
}
