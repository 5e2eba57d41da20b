package ledger

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
)

// Blob keys owned by the store.
const (
	RecordsKey = "records"
	ItemsKey   = "category_items"
)

// recordJSON is the on-disk shape of a record. Amount is written as a
// decimal string; plain JSON numbers are accepted on read.
type recordJSON struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
}

type itemJSON struct {
	Type  core.Kind `json:"type"`
	Label string    `json:"label"`
}

// EncodeLedger serializes records in list order.
func EncodeLedger(l core.Ledger) (string, error) {
	out := make([]recordJSON, len(l))
	for i, r := range l {
		out[i] = recordJSON{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Category:  r.Category,
			Amount:    r.Amount,
			Memo:      r.Memo,
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode ledger: %w", err)
	}
	return string(b), nil
}

// DecodeLedger parses a persisted ledger. Every record must be valid; a
// single bad record rejects the whole blob.
func DecodeLedger(s string) (core.Ledger, error) {
	if strings.TrimSpace(s) == "" {
		return core.Ledger{}, nil
	}
	var in []recordJSON
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	l := make(core.Ledger, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, r := range in {
		rec := core.Record{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Category:  r.Category,
			Amount:    r.Amount,
			Memo:      r.Memo,
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("decode ledger: record %d: %w", i, err)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("decode ledger: duplicate id %q", rec.ID)
		}
		seen[rec.ID] = struct{}{}
		l[i] = rec
	}
	return l, nil
}

// EncodeItems serializes the category item list.
func EncodeItems(items []core.CategoryItem) (string, error) {
	out := make([]itemJSON, len(items))
	for i, it := range items {
		out[i] = itemJSON{Type: it.Kind, Label: it.Label}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode category items: %w", err)
	}
	return string(b), nil
}

// DecodeItems parses the category item list, re-applying the add rules so
// a hand-edited blob cannot smuggle in duplicates or exceed the cap.
func DecodeItems(s string) ([]core.CategoryItem, error) {
	var in []itemJSON
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return nil, fmt.Errorf("decode category items: %w", err)
	}
	items := make([]core.CategoryItem, 0, len(in))
	for i, it := range in {
		var err error
		items, err = core.AddCategoryItem(items, core.CategoryItem{Kind: it.Type, Label: it.Label})
		if err != nil {
			return nil, fmt.Errorf("decode category items: item %d: %w", i, err)
		}
	}
	return items, nil
}
