package ledger

import (
	"context"
	"fmt"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

// Items returns a copy of the category item list in display order.
func (s *Store) Items() []core.CategoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CategoryItem(nil), s.items...)
}

// AddItem appends a category item. Validation failures leave the list
// unchanged.
func (s *Store) AddItem(ctx context.Context, item core.CategoryItem) error {
	return s.mutateItems(ctx, log.OpAddItem, func(items []core.CategoryItem) ([]core.CategoryItem, error) {
		return core.AddCategoryItem(items, item)
	})
}

// RemoveItem deletes the item at index.
func (s *Store) RemoveItem(ctx context.Context, index int) error {
	return s.mutateItems(ctx, log.OpRemoveItem, func(items []core.CategoryItem) ([]core.CategoryItem, error) {
		return core.RemoveCategoryItem(items, index)
	})
}

// MoveItemUp swaps the item at index with its predecessor. The first item
// stays where it is.
func (s *Store) MoveItemUp(ctx context.Context, index int) error {
	return s.mutateItems(ctx, log.OpMoveItem, func(items []core.CategoryItem) ([]core.CategoryItem, error) {
		if index == 0 && len(items) > 0 {
			return items, nil
		}
		return core.SwapCategoryItems(items, index, index-1)
	})
}

// MoveItemDown swaps the item at index with its successor. The last item
// stays where it is.
func (s *Store) MoveItemDown(ctx context.Context, index int) error {
	return s.mutateItems(ctx, log.OpMoveItem, func(items []core.CategoryItem) ([]core.CategoryItem, error) {
		if index >= 0 && index == len(items)-1 {
			return items, nil
		}
		return core.SwapCategoryItems(items, index, index+1)
	})
}

// ResetItems restores the default category items.
func (s *Store) ResetItems(ctx context.Context) error {
	return s.mutateItems(ctx, log.OpReset, func([]core.CategoryItem) ([]core.CategoryItem, error) {
		return core.DefaultCategoryItems(), nil
	})
}

func (s *Store) mutateItems(ctx context.Context, op string, fn func([]core.CategoryItem) ([]core.CategoryItem, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureItems(ctx)

	next, err := fn(s.items)
	if err != nil {
		return err
	}
	s.items = next
	s.revision++

	if !s.itemsLoaded {
		err := fmt.Errorf("%w: %s: stored items unreadable, change kept in memory only", core.ErrStorageWrite, ItemsKey)
		s.logger.OperationFailed(ctx, op, err, log.FieldKey, ItemsKey)
		return err
	}
	raw, err := EncodeItems(next)
	if err == nil {
		err = s.blob.Set(ctx, ItemsKey, raw)
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", core.ErrStorageWrite, ItemsKey, err)
		s.logger.OperationFailed(ctx, op, err, log.FieldKey, ItemsKey)
		return err
	}
	s.logger.InfoContext(ctx, "category items updated", log.FieldOperation, op, log.FieldCount, len(next))
	return nil
}

// ensureItems is ensureRecords for the category item key. Callers hold mu.
func (s *Store) ensureItems(ctx context.Context) {
	if s.itemsLoaded {
		return
	}
	items, loaded, err := readItems(ctx, s.blob)
	if err != nil {
		s.logger.OperationFailed(ctx, log.OpLoad, err, log.FieldKey, ItemsKey)
	}
	if !loaded {
		return
	}
	s.items, s.itemsLoaded = items, true
	s.revision++
}
