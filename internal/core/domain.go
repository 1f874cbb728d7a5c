package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Date is a calendar date with day granularity. Time-of-day is always
	// midnight; comparisons use calendar components only.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID       string          `json:"id"`
		Title    string          `json:"title"`
		Amount   float64         `json:"amount"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category"` // name reference, not a foreign key
		Date     Date            `json:"date"`
	}

	Category struct {
		ID   string          `json:"id"`
		Name string          `json:"name"`
		Icon string          `json:"icon"` // presentation glyph tag, passed through
		Type TransactionType `json:"type"`
	}

	DashboardStats struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
		NetBalance   float64 `json:"netBalance"`
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyName       = errors.New("empty name")
	ErrNotFound        = errors.New("not found")
	ErrReorderMismatch = errors.New("reorder must contain the same set of categories")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// SameDay reports whether d and t fall on the same calendar day.
func (d Date) SameDay(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month() && d.Day() == t.Day()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses a persisted date. Parsing is forgiving: a value that
// is not a recognizable date becomes the zero Date, which matches no
// time-bounded filter and no trend bucket, instead of failing the whole load.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05.000Z0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	d.Time = time.Time{}
	return nil
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Validate checks boundary invariants for a transaction about to enter the
// log. The aggregation core itself assumes validated input.
func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// DefaultCategories is the fixed set seeded on first run when no persisted
// category list exists: three income and six expense categories.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Salary", Icon: "fa-wallet", Type: Income},
		{ID: "2", Name: "Business", Icon: "fa-briefcase", Type: Income},
		{ID: "3", Name: "Investment", Icon: "fa-chart-line", Type: Income},
		{ID: "4", Name: "Food", Icon: "fa-utensils", Type: Expense},
		{ID: "5", Name: "Rent", Icon: "fa-home", Type: Expense},
		{ID: "6", Name: "Transport", Icon: "fa-car", Type: Expense},
		{ID: "7", Name: "Shopping", Icon: "fa-shopping-bag", Type: Expense},
		{ID: "8", Name: "Entertainment", Icon: "fa-film", Type: Expense},
		{ID: "9", Name: "Health", Icon: "fa-heartbeat", Type: Expense},
	}
}

// FallbackIcon is used when a transaction references a category that no
// longer exists in the registry.
const FallbackIcon = "fa-tag"
