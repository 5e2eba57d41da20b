package core

import (
	"fmt"
	"strings"
)

// MaxCategoryItems caps the editable category button list.
const MaxCategoryItems = 10

// CategoryItem is a selectable category button on the tagging screen.
type CategoryItem struct {
	Kind  Kind
	Label string
}

var (
	ErrEmptyLabel    = fmt.Errorf("%w: empty category label", ErrValidation)
	ErrDuplicateItem = fmt.Errorf("%w: duplicate category item", ErrValidation)
	ErrTooManyItems  = fmt.Errorf("%w: too many category items (max %d)", ErrValidation, MaxCategoryItems)
)

// DefaultCategoryItems is the button list used until the user edits it.
func DefaultCategoryItems() []CategoryItem {
	return []CategoryItem{
		{Kind: Expense, Label: "Food"},
		{Kind: Expense, Label: "Transport"},
		{Kind: Expense, Label: "Hobby"},
		{Kind: Expense, Label: "Other"},
		{Kind: Income, Label: "Income"},
	}
}

func (c CategoryItem) Validate() error {
	if err := c.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Label) == "" {
		return ErrEmptyLabel
	}
	return nil
}

func (c CategoryItem) String() string {
	return fmt.Sprintf("%s (%s)", c.Label, c.Kind)
}

// AddCategoryItem returns items with item appended, or an error and the
// original slice untouched.
func AddCategoryItem(items []CategoryItem, item CategoryItem) ([]CategoryItem, error) {
	item.Label = strings.TrimSpace(item.Label)
	if err := item.Validate(); err != nil {
		return items, err
	}
	if len(items) >= MaxCategoryItems {
		return items, ErrTooManyItems
	}
	for _, existing := range items {
		if existing.Kind == item.Kind && existing.Label == item.Label {
			return items, fmt.Errorf("%w: %s", ErrDuplicateItem, item)
		}
	}
	out := make([]CategoryItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item), nil
}

// SwapCategoryItems returns a copy of items with positions i and j exchanged.
func SwapCategoryItems(items []CategoryItem, i, j int) ([]CategoryItem, error) {
	if i < 0 || i >= len(items) || j < 0 || j >= len(items) {
		return items, fmt.Errorf("%w: category item index out of range", ErrNotFound)
	}
	out := append([]CategoryItem(nil), items...)
	out[i], out[j] = out[j], out[i]
	return out, nil
}

// RemoveCategoryItem returns a copy of items without position i.
func RemoveCategoryItem(items []CategoryItem, i int) ([]CategoryItem, error) {
	if i < 0 || i >= len(items) {
		return items, fmt.Errorf("%w: category item index %d", ErrNotFound, i)
	}
	out := make([]CategoryItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), nil
}
