package core

// CategoryAmount is an amount aggregated under one category name.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"value"`
}

// Stats reduces a transaction subset to its dashboard totals. An empty
// subset yields all zeros.
func Stats(txs []Transaction) DashboardStats {
	var s DashboardStats
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpense += t.Amount
		}
	}
	s.NetBalance = s.TotalIncome - s.TotalExpense
	return s
}

// ExpenseDistribution groups expense transactions by category name, summing
// amounts per group. Entries appear in first-occurrence order; categories
// with no expenses are absent rather than zero.
func ExpenseDistribution(txs []Transaction) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Name: t.Category})
		}
		out[i].Amount += t.Amount
	}
	return out
}
