package services

import (
	"context"
	"errors"
	"testing"

	"ledgerly/internal/core"
	"ledgerly/internal/kvmem"
	"ledgerly/internal/store"
)

func newTestRegistry(t *testing.T) (*CategoryService, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), kvmem.New(), testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewCategoryService(st, testLogger()), st
}

func ids(cats []core.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.ID
	}
	return out
}

func TestAddAppendsToEnd(t *testing.T) {
	svc, _ := newTestRegistry(t)
	ctx := context.Background()

	cat, err := svc.Add(ctx, "Pets", core.Expense, "fa-paw")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	list := svc.List()
	if list[len(list)-1].ID != cat.ID {
		t.Fatalf("new category should be last, got order %v", ids(list))
	}
}

func TestAddAllowsDuplicateNames(t *testing.T) {
	svc, _ := newTestRegistry(t)
	ctx := context.Background()

	a, _ := svc.Add(ctx, "Misc", core.Expense, "fa-box")
	b, err := svc.Add(ctx, "Misc", core.Expense, "fa-box")
	if err != nil {
		t.Fatalf("duplicate name must be allowed: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("duplicate names still get distinct ids")
	}
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestRegistry(t)
	if _, err := svc.Add(context.Background(), "  ", core.Expense, "fa-box"); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.Add(context.Background(), "Misc", "transfer", "fa-box"); !errors.Is(err, core.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	svc, _ := newTestRegistry(t)
	ctx := context.Background()

	before := svc.List()
	if err := svc.Remove(ctx, before[0].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	after := svc.List()
	if len(after) != len(before)-1 {
		t.Fatalf("expected %d categories, got %d", len(before)-1, len(after))
	}
	if err := svc.Remove(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Deleting a referenced category is not cascaded: the transaction keeps its
// category name and becomes an orphaned reference.
func TestRemoveLeavesReferencingTransactionsAlone(t *testing.T) {
	registry, st := newTestRegistry(t)
	ledger := NewLedgerService(st, testLogger())
	ctx := context.Background()

	tx, err := ledger.CreateTransaction(ctx, TransactionInput{
		Title: "Lunch", Amount: 12, Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 1, 2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var foodID string
	for _, c := range registry.List() {
		if c.Name == "Food" {
			foodID = c.ID
		}
	}
	if err := registry.Remove(ctx, foodID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	snap := ledger.Snapshot()
	if len(snap) != 1 || snap[0].ID != tx.ID || snap[0].Category != "Food" {
		t.Fatalf("transaction must be unchanged, got %+v", snap)
	}
}

func TestMoveUpDown(t *testing.T) {
	svc, _ := newTestRegistry(t)
	ctx := context.Background()
	before := ids(svc.List())

	// Boundary no-ops.
	if err := svc.MoveUp(ctx, before[0]); err != nil {
		t.Fatalf("moveUp first: %v", err)
	}
	if err := svc.MoveDown(ctx, before[len(before)-1]); err != nil {
		t.Fatalf("moveDown last: %v", err)
	}
	after := ids(svc.List())
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("boundary move must be a no-op, order changed at %d", i)
		}
	}

	// A real swap.
	if err := svc.MoveDown(ctx, before[0]); err != nil {
		t.Fatalf("moveDown: %v", err)
	}
	got := ids(svc.List())
	if got[0] != before[1] || got[1] != before[0] {
		t.Fatalf("expected swap of first two, got %v", got[:2])
	}

	if err := svc.MoveUp(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderRoundTrip(t *testing.T) {
	svc, _ := newTestRegistry(t)
	ctx := context.Background()

	current := svc.List()
	reversed := make([]core.Category, len(current))
	for i, c := range current {
		reversed[len(current)-1-i] = c
	}

	if err := svc.Reorder(ctx, reversed); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got := svc.List()
	for i := range reversed {
		if got[i].ID != reversed[i].ID {
			t.Fatalf("order not applied at index %d: %v", i, ids(got))
		}
	}
}

func TestReorderRejectsMismatchedSets(t *testing.T) {
	svc, _ := newTestRegistry(t)
	ctx := context.Background()
	current := svc.List()

	t.Run("dropped entry", func(t *testing.T) {
		if err := svc.Reorder(ctx, current[1:]); !errors.Is(err, core.ErrReorderMismatch) {
			t.Fatalf("expected ErrReorderMismatch, got %v", err)
		}
	})

	t.Run("duplicated entry", func(t *testing.T) {
		dup := append([]core.Category(nil), current...)
		dup[1] = dup[0]
		if err := svc.Reorder(ctx, dup); !errors.Is(err, core.ErrReorderMismatch) {
			t.Fatalf("expected ErrReorderMismatch, got %v", err)
		}
	})

	t.Run("unknown entry", func(t *testing.T) {
		alien := append([]core.Category(nil), current...)
		alien[0] = core.Category{ID: "alien", Name: "Alien", Type: core.Expense}
		if err := svc.Reorder(ctx, alien); !errors.Is(err, core.ErrReorderMismatch) {
			t.Fatalf("expected ErrReorderMismatch, got %v", err)
		}
	})

	// Failed reorders leave the registry untouched.
	got := ids(svc.List())
	want := ids(current)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("registry changed after rejected reorder at %d", i)
		}
	}
}

func TestForType(t *testing.T) {
	svc, _ := newTestRegistry(t)

	income := svc.ForType(core.Income)
	expense := svc.ForType(core.Expense)
	if len(income) != 3 || len(expense) != 6 {
		t.Fatalf("expected 3 income / 6 expense, got %d/%d", len(income), len(expense))
	}
	for _, c := range income {
		if c.Type != core.Income {
			t.Errorf("wrong type in income partition: %+v", c)
		}
	}
}
