package screens

import (
	"time"

	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
)

// Set is every controller wired to one store.
type Set struct {
	Entry   *EntryCapture
	Tagging *Tagging
	Results *Results
	Memo    *MemoEditor
	Graph   *Graph
	Format  Formatter
}

// NewSet builds the controllers once for the life of the store.
func NewSet(store *ledger.Store, format Formatter, cacheSize int, now func() time.Time, logger *log.Logger) *Set {
	if logger == nil {
		logger = log.Discard()
	}
	if now == nil {
		now = time.Now
	}
	return &Set{
		Entry:   NewEntryCapture(logger),
		Tagging: NewTagging(store, logger),
		Results: NewResults(store, format, logger),
		Memo:    NewMemoEditor(store),
		Graph:   NewGraph(store, format, cacheSize, WithGraphClock(now), WithGraphLogger(logger)),
		Format:  format,
	}
}
