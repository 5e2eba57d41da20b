// Package screens holds the logic behind each ledger screen, independent of
// any UI toolkit. Controllers take a *ledger.Store, return display-ready
// values and plain errors; NoticeFor turns those errors into what a screen
// shows.
package screens

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
)

// ErrResetNotConfirmed rejects a reset without explicit confirmation.
var ErrResetNotConfirmed = fmt.Errorf("%w: reset requires confirmation", core.ErrValidation)

// PendingEntry is an amount that has been typed but not tagged yet. It
// becomes a record only when Tagging commits it.
type PendingEntry struct {
	Amount decimal.Decimal
}

// EntryCapture validates the typed amount on the entry keypad.
type EntryCapture struct {
	logger *log.Logger
}

func NewEntryCapture(logger *log.Logger) *EntryCapture {
	if logger == nil {
		logger = log.Discard()
	}
	return &EntryCapture{logger: logger.WithComponent(log.ComponentScreens)}
}

// Submit parses input into a pending entry.
func (e *EntryCapture) Submit(input string) (PendingEntry, error) {
	amount, err := core.ParseAmount(input)
	if err != nil {
		e.logger.Debug("amount rejected", log.FieldInput, input)
		return PendingEntry{}, err
	}
	return PendingEntry{Amount: amount}, nil
}

// Tagging lists the category buttons and turns a pending entry into a
// record. It also edits the button list.
type Tagging struct {
	store  *ledger.Store
	logger *log.Logger
}

func NewTagging(store *ledger.Store, logger *log.Logger) *Tagging {
	if logger == nil {
		logger = log.Discard()
	}
	return &Tagging{store: store, logger: logger.WithComponent(log.ComponentScreens)}
}

// Options returns the category buttons in display order.
func (t *Tagging) Options() []core.CategoryItem {
	return t.store.Items()
}

// Commit records the pending amount under item. A zero pending entry is
// rejected so that an abandoned capture never produces a record.
func (t *Tagging) Commit(ctx context.Context, p PendingEntry, item core.CategoryItem) (core.Record, error) {
	if !p.Amount.IsPositive() {
		return core.Record{}, core.ErrInvalidAmount
	}
	if err := item.Validate(); err != nil {
		return core.Record{}, err
	}
	return t.store.Append(ctx, p.Amount, item.Label, item.Kind)
}

// CommitIndex commits with the button at index.
func (t *Tagging) CommitIndex(ctx context.Context, p PendingEntry, index int) (core.Record, error) {
	items := t.store.Items()
	if index < 0 || index >= len(items) {
		return core.Record{}, fmt.Errorf("%w: category item index %d", core.ErrNotFound, index)
	}
	return t.Commit(ctx, p, items[index])
}

func (t *Tagging) AddItem(ctx context.Context, kind core.Kind, label string) error {
	return t.store.AddItem(ctx, core.CategoryItem{Kind: kind, Label: label})
}

func (t *Tagging) RemoveItem(ctx context.Context, index int) error {
	return t.store.RemoveItem(ctx, index)
}

func (t *Tagging) MoveUp(ctx context.Context, index int) error {
	return t.store.MoveItemUp(ctx, index)
}

func (t *Tagging) MoveDown(ctx context.Context, index int) error {
	return t.store.MoveItemDown(ctx, index)
}
