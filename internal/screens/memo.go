package screens

import (
	"context"
	"fmt"
	"unicode/utf8"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
)

// MemoDraft is the memo editor's initial state.
type MemoDraft struct {
	RecordID  string
	Memo      string
	Remaining int // runes left before MaxMemoLength
}

// MemoEditor edits the memo of a single record.
type MemoEditor struct {
	store *ledger.Store
}

func NewMemoEditor(store *ledger.Store) *MemoEditor {
	return &MemoEditor{store: store}
}

// Open prefills the editor with the record's current memo.
func (m *MemoEditor) Open(id string) (MemoDraft, error) {
	rec, ok := m.store.Get(id)
	if !ok {
		return MemoDraft{}, fmt.Errorf("%w: record %q", core.ErrNotFound, id)
	}
	return MemoDraft{RecordID: id, Memo: rec.Memo, Remaining: Remaining(rec.Memo)}, nil
}

// Save stores memo on the record. The record may have been deleted since
// Open, in which case ErrNotFound is returned and nothing changes.
func (m *MemoEditor) Save(ctx context.Context, id, memo string) (core.Record, error) {
	return m.store.UpdateMemo(ctx, id, memo)
}

// Remaining reports how many more runes memo can take; negative when over.
func Remaining(memo string) int {
	return core.MaxMemoLength - utf8.RuneCountInString(memo)
}
