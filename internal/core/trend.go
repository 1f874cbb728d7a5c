package core

import "time"

// TrendDays is the fixed span of the daily trend series.
const TrendDays = 30

// TrendPoint is one day of the trend series.
type TrendPoint struct {
	Date    Date    `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Label is the short chart label for the point. Labels can collide across
// years; buckets are keyed by full date, never by label.
func (p TrendPoint) Label() string {
	return p.Date.Format("Jan 2")
}

// Trend produces the 30-day daily income/expense series spanning
// [now-29d, now] in ascending order. Every bucket exists regardless of data.
// It consumes the full unfiltered transaction log; entries outside the
// window, and entries with a zero date, are silently excluded.
func Trend(txs []Transaction, now time.Time) []TrendPoint {
	points := make([]TrendPoint, TrendDays)
	index := make(map[string]int, TrendDays)
	day := DateOf(now).AddDate(0, 0, -(TrendDays - 1))
	for i := range points {
		d := Date{Time: day}
		points[i] = TrendPoint{Date: d}
		index[d.String()] = i
		day = day.AddDate(0, 0, 1)
	}
	for _, t := range txs {
		if t.Date.IsZero() {
			continue
		}
		i, ok := index[t.Date.String()]
		if !ok {
			continue
		}
		switch t.Type {
		case Income:
			points[i].Income += t.Amount
		case Expense:
			points[i].Expense += t.Amount
		}
	}
	return points
}
