package screens

import (
	"context"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
)

// Row is one ledger line as displayed.
type Row struct {
	ID       string
	Time     string
	Category string
	Kind     core.Kind
	Amount   string
	Memo     string
}

// ResultsView is the ledger screen: rows most recent first plus totals.
type ResultsView struct {
	Rows         []Row
	Balance      string
	BalanceValue decimal.Decimal
	Income       string
	Expense      string
}

// Results drives the ledger list screen.
type Results struct {
	store  *ledger.Store
	format Formatter
	logger *log.Logger
}

func NewResults(store *ledger.Store, format Formatter, logger *log.Logger) *Results {
	if logger == nil {
		logger = log.Discard()
	}
	return &Results{store: store, format: format, logger: logger.WithComponent(log.ComponentScreens)}
}

// Refresh reloads persisted data and returns the view. On a read failure
// the view is still returned, built from whatever the store holds.
func (r *Results) Refresh(ctx context.Context) (ResultsView, error) {
	err := r.store.Refresh(ctx)
	return r.View(), err
}

// View builds the screen from the in-memory ledger without touching storage.
func (r *Results) View() ResultsView {
	records := r.store.List()
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, r.row(rec))
	}
	balance := core.Balance(records)
	totals := core.TotalsByKind(records)
	return ResultsView{
		Rows:         rows,
		Balance:      r.format.Amount(balance),
		BalanceValue: balance,
		Income:       r.format.Amount(totals.Income),
		Expense:      r.format.Amount(totals.Expense),
	}
}

func (r *Results) row(rec core.Record) Row {
	return Row{
		ID:       rec.ID,
		Time:     r.format.Time(rec.Timestamp),
		Category: rec.Category,
		Kind:     rec.Kind(),
		Amount:   r.format.Amount(rec.Amount),
		Memo:     rec.Memo,
	}
}

// Delete removes a row and returns the updated view.
func (r *Results) Delete(ctx context.Context, id string) (ResultsView, error) {
	err := r.store.Delete(ctx, id)
	return r.View(), err
}

// ResetAll wipes every record. Without confirmed nothing happens.
func (r *Results) ResetAll(ctx context.Context, confirmed bool) (ResultsView, error) {
	if !confirmed {
		return r.View(), ErrResetNotConfirmed
	}
	if err := r.store.ResetAll(ctx); err != nil {
		return r.View(), err
	}
	r.logger.InfoContext(ctx, "all records reset", log.FieldOperation, log.OpReset)
	return r.View(), nil
}
