package core

import (
	"sort"
	"time"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Filter derives the active transaction subset: entries matching the time
// window AND the category selector, ordered by date descending (most recent
// first). The input slice is never mutated.
func Filter(txs []Transaction, timeFilter TimeFilter, categoryFilter string, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if !MatchesTimeFilter(t.Date, now, timeFilter) {
			continue
		}
		if categoryFilter != CategoryAll && t.Category != categoryFilter {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
