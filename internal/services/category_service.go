package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ledgerly/internal/core"
	"ledgerly/internal/log"
	"ledgerly/internal/store"
)

// CategoryService maintains the ordered, user-editable category registry.
// Registry order is user-controlled, never derived from a sort key.
type CategoryService struct {
	store  *store.Store
	logger *log.Logger
}

func NewCategoryService(st *store.Store, logger *log.Logger) *CategoryService {
	return &CategoryService{
		store:  st,
		logger: logger.WithComponent(log.ComponentRegistry),
	}
}

// List returns the registry in its current order.
func (s *CategoryService) List() []core.Category {
	return s.store.Categories()
}

// ForType returns the categories offered when entering a transaction of the
// given type, preserving registry order.
func (s *CategoryService) ForType(t core.TransactionType) []core.Category {
	var out []core.Category
	for _, c := range s.store.Categories() {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Add appends a new category to the end of the registry. Names are not
// deduplicated.
func (s *CategoryService) Add(ctx context.Context, name string, t core.TransactionType, icon string) (core.Category, error) {
	cat := core.Category{
		ID:   uuid.NewString(),
		Name: name,
		Icon: icon,
		Type: t,
	}
	if err := cat.Validate(); err != nil {
		return core.Category{}, fmt.Errorf("add category: %w", err)
	}

	cats := append(s.store.Categories(), cat)
	s.store.ReplaceCategories(ctx, cats, store.Change{
		Entity: store.EntityCategory, Op: store.OpCreated, ID: cat.ID,
	})

	s.logger.InfoContext(ctx, "Category added",
		log.FieldCategoryID, cat.ID,
		log.FieldCategoryName, cat.Name,
		log.FieldType, string(cat.Type))

	return cat, nil
}

// Remove deletes the category. Transactions referencing its name are left
// untouched; they become orphaned references rendered with a fallback icon.
func (s *CategoryService) Remove(ctx context.Context, id string) error {
	cats := s.store.Categories()
	kept := cats[:0:0]
	for _, c := range cats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cats) {
		return fmt.Errorf("remove category %s: %w", id, core.ErrNotFound)
	}

	s.store.ReplaceCategories(ctx, kept, store.Change{
		Entity: store.EntityCategory, Op: store.OpDeleted, ID: id,
	})

	s.logger.InfoContext(ctx, "Category removed", log.FieldCategoryID, id)
	return nil
}

// MoveUp swaps the category with its predecessor. Already first is a no-op.
func (s *CategoryService) MoveUp(ctx context.Context, id string) error {
	return s.move(ctx, id, -1)
}

// MoveDown swaps the category with its successor. Already last is a no-op.
func (s *CategoryService) MoveDown(ctx context.Context, id string) error {
	return s.move(ctx, id, +1)
}

func (s *CategoryService) move(ctx context.Context, id string, dir int) error {
	cats := s.store.Categories()
	idx := -1
	for i := range cats {
		if cats[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("move category %s: %w", id, core.ErrNotFound)
	}

	target := idx + dir
	if target < 0 || target >= len(cats) {
		return nil // bounded at the list ends
	}

	cats[idx], cats[target] = cats[target], cats[idx]
	s.store.ReplaceCategories(ctx, cats, store.Change{
		Entity: store.EntityCategory, Op: store.OpUpdated, ID: id,
	})
	return nil
}

// Reorder replaces the registry order wholesale. The new order must contain
// exactly the current set of categories; a reorder that drops, duplicates or
// invents entries is rejected.
func (s *CategoryService) Reorder(ctx context.Context, newOrder []core.Category) error {
	current := s.store.Categories()
	if len(newOrder) != len(current) {
		return fmt.Errorf("reorder: %w", core.ErrReorderMismatch)
	}

	known := make(map[string]bool, len(current))
	for _, c := range current {
		known[c.ID] = true
	}
	seen := make(map[string]bool, len(newOrder))
	for _, c := range newOrder {
		if !known[c.ID] || seen[c.ID] {
			return fmt.Errorf("reorder: %w", core.ErrReorderMismatch)
		}
		seen[c.ID] = true
	}

	s.store.ReplaceCategories(ctx, newOrder, store.Change{
		Entity: store.EntityCategory, Op: store.OpUpdated, ID: "",
	})

	s.logger.InfoContext(ctx, "Categories reordered", log.FieldCount, len(newOrder))
	return nil
}
