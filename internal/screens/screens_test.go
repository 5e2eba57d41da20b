package screens

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

func TestEntryCaptureSubmit(t *testing.T) {
	e := NewEntryCapture(nil)

	p, err := e.Submit("1500")
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(1500)))

	p, err = e.Submit("12,5")
	require.NoError(t, err)
	assert.Equal(t, "12.5", p.Amount.String())

	for _, in := range []string{"", "0", "-3", "abc", "1,000.5"} {
		_, err := e.Submit(in)
		assert.ErrorIs(t, err, core.ErrInvalidAmount, "input %q", in)
		assert.ErrorIs(t, err, core.ErrValidation, "input %q", in)
	}
}

func TestTaggingCommit(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	tag := NewTagging(store, nil)
	e := NewEntryCapture(nil)

	opts := tag.Options()
	require.Equal(t, core.DefaultCategoryItems(), opts)

	p, err := e.Submit("1500")
	require.NoError(t, err)
	rec, err := tag.CommitIndex(ctx, p, 0)
	require.NoError(t, err)
	assert.Equal(t, "Food", rec.Category)
	assert.Equal(t, "-1500", rec.Amount.String())

	p, err = e.Submit("5000")
	require.NoError(t, err)
	rec, err = tag.Commit(ctx, p, core.CategoryItem{Kind: core.Income, Label: "Income"})
	require.NoError(t, err)
	assert.Equal(t, "5000", rec.Amount.String())
	assert.Len(t, store.List(), 2)
}

func TestTaggingRejectsEmptyPending(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	tag := NewTagging(store, nil)

	_, err := tag.CommitIndex(ctx, PendingEntry{}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = tag.CommitIndex(ctx, PendingEntry{Amount: decimal.NewFromInt(1)}, 99)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, store.List())
}

func TestTaggingEditsItems(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	tag := NewTagging(store, nil)

	require.NoError(t, tag.AddItem(ctx, core.Expense, "  Rent "))
	opts := tag.Options()
	assert.Equal(t, "Rent", opts[len(opts)-1].Label)

	require.NoError(t, tag.MoveUp(ctx, len(opts)-1))
	assert.Equal(t, "Rent", tag.Options()[len(opts)-2].Label)

	require.NoError(t, tag.MoveDown(ctx, len(opts)-2))
	assert.Equal(t, "Rent", tag.Options()[len(opts)-1].Label)

	require.NoError(t, tag.RemoveItem(ctx, len(opts)-1))
	assert.Equal(t, core.DefaultCategoryItems(), tag.Options())

	assert.ErrorIs(t, tag.AddItem(ctx, core.Expense, "Food"), core.ErrDuplicateItem)
	assert.ErrorIs(t, tag.AddItem(ctx, core.Kind("gift"), "Gift"), core.ErrInvalidKind)
}

func TestResultsView(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	tag := NewTagging(store, nil)
	res := NewResults(store, utcFormatter(), nil)

	_, err := tag.Commit(ctx, PendingEntry{Amount: decimal.NewFromInt(1500)}, core.CategoryItem{Kind: core.Expense, Label: "Food"})
	require.NoError(t, err)
	_, err = tag.Commit(ctx, PendingEntry{Amount: decimal.NewFromInt(5000)}, core.CategoryItem{Kind: core.Income, Label: "Income"})
	require.NoError(t, err)

	view, err := res.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, Row{ID: "r2", Time: "2025/03/10 09:30", Category: "Income", Kind: core.Income, Amount: "5,000円"}, view.Rows[0])
	assert.Equal(t, "-1,500円", view.Rows[1].Amount)
	assert.Equal(t, "3,500円", view.Balance)
	assert.Equal(t, "5,000円", view.Income)
	assert.Equal(t, "1,500円", view.Expense)
	assert.True(t, view.BalanceValue.Equal(decimal.NewFromInt(3500)))
}

func TestResultsDeleteAndReset(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	tag := NewTagging(store, nil)
	res := NewResults(store, utcFormatter(), nil)

	for i := 0; i < 3; i++ {
		_, err := tag.CommitIndex(ctx, PendingEntry{Amount: decimal.NewFromInt(100)}, 0)
		require.NoError(t, err)
	}

	view, err := res.Delete(ctx, "r2")
	require.NoError(t, err)
	assert.Len(t, view.Rows, 2)

	view, err = res.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, view.Rows, 2)

	view, err = res.ResetAll(ctx, false)
	assert.ErrorIs(t, err, ErrResetNotConfirmed)
	assert.Len(t, view.Rows, 2)

	view, err = res.ResetAll(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.Equal(t, "0円", view.Balance)
	assert.Len(t, tag.Options(), len(core.DefaultCategoryItems()), "items survive reset")
}

func TestResultsRefreshReadFailure(t *testing.T) {
	ctx := context.Background()
	store, b := newStore(t, fixed(t0))
	res := NewResults(store, utcFormatter(), nil)
	_, err := NewTagging(store, nil).CommitIndex(ctx, PendingEntry{Amount: decimal.NewFromInt(1)}, 0)
	require.NoError(t, err)

	b.fail(false, true)
	view, err := res.Refresh(ctx)
	assert.ErrorIs(t, err, core.ErrStorageRead)
	assert.Empty(t, view.Rows)

	n, ok := NoticeFor(err)
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, n.Severity)
}

func TestWriteFailureKeepsRecordAndWarns(t *testing.T) {
	ctx := context.Background()
	store, b := newStore(t, fixed(t0))
	b.fail(true, false)

	rec, err := NewTagging(store, nil).CommitIndex(ctx, PendingEntry{Amount: decimal.NewFromInt(700)}, 1)
	assert.ErrorIs(t, err, core.ErrStorageWrite)
	assert.Equal(t, "Transport", rec.Category)

	view := NewResults(store, utcFormatter(), nil).View()
	assert.Len(t, view.Rows, 1)

	n, _ := NoticeFor(err)
	assert.Equal(t, SeverityWarning, n.Severity)
}

func TestMemoEditor(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	rec, err := NewTagging(store, nil).CommitIndex(ctx, PendingEntry{Amount: decimal.NewFromInt(1500)}, 0)
	require.NoError(t, err)

	ed := NewMemoEditor(store)
	draft, err := ed.Open(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, MemoDraft{RecordID: rec.ID, Remaining: core.MaxMemoLength}, draft)

	saved, err := ed.Save(ctx, rec.ID, "lunch")
	require.NoError(t, err)
	assert.Equal(t, "lunch", saved.Memo)
	assert.True(t, saved.Amount.Equal(rec.Amount))

	draft, err = ed.Open(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "lunch", draft.Memo)
	assert.Equal(t, core.MaxMemoLength-5, draft.Remaining)

	_, err = ed.Save(ctx, rec.ID, strings.Repeat("あ", core.MaxMemoLength+1))
	assert.ErrorIs(t, err, core.ErrMemoTooLong)

	require.NoError(t, store.Delete(ctx, rec.ID))
	_, err = ed.Save(ctx, rec.ID, "late")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = ed.Open(rec.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	n, _ := NoticeFor(err)
	assert.Equal(t, SeverityInfo, n.Severity)
}

func TestGraphSeriesAndCache(t *testing.T) {
	ctx := context.Background()
	times := []time.Time{
		time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC),
	}
	i := 0
	store, _ := newStore(t, func() time.Time { ts := times[i%len(times)]; i++; return ts })
	tag := NewTagging(store, nil)
	g := NewGraph(store, utcFormatter(), 4, WithGraphClock(fixed(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))))

	_, err := tag.Commit(ctx, PendingEntry{Amount: decimal.NewFromInt(5000)}, core.CategoryItem{Kind: core.Income, Label: "Income"})
	require.NoError(t, err)
	_, err = tag.Commit(ctx, PendingEntry{Amount: decimal.NewFromInt(1500)}, core.CategoryItem{Kind: core.Expense, Label: "Food"})
	require.NoError(t, err)

	assert.Equal(t, core.MonthKey{Year: 2025, Month: time.April}, g.CurrentMonth())
	pts := g.Series(g.CurrentMonth())
	require.Len(t, pts, 4)
	assert.Equal(t, "2025-01", pts[0].Label)
	assert.Equal(t, "5,000円", pts[0].Display)
	assert.Equal(t, "5,000円", pts[1].Display)
	assert.Equal(t, "3,500円", pts[2].Display)
	assert.Equal(t, "-1500", pts[2].Total.String())
	assert.Equal(t, "3,500円", pts[3].Display)

	g.Series(g.CurrentMonth())
	assert.Equal(t, uint64(1), g.CacheStats().Hits)

	_, err = tag.Commit(ctx, PendingEntry{Amount: decimal.NewFromInt(500)}, core.CategoryItem{Kind: core.Expense, Label: "Food"})
	require.NoError(t, err)
	pts = g.Series(g.CurrentMonth())
	assert.Equal(t, "3,000円", pts[3].Display, "mutation invalidates cached series")
}

func TestGraphRefreshAndEarlyThrough(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	_, err := NewTagging(store, nil).CommitIndex(ctx, PendingEntry{Amount: decimal.NewFromInt(10)}, 0)
	require.NoError(t, err)

	g := NewGraph(store, utcFormatter(), 2, WithGraphClock(fixed(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))))
	pts, err := g.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, pts, 6)
	assert.Equal(t, "-10円", pts[5].Display)

	pts = g.Series(core.MonthKey{Year: 2025, Month: time.February})
	require.Len(t, pts, 2)
	assert.True(t, pts[1].Cumulative.IsZero(), "records after the through month are excluded")
}

func TestFormatterAmount(t *testing.T) {
	f := Formatter{Suffix: " JPY"}
	cases := map[string]string{
		"0":          "0 JPY",
		"1500":       "1,500 JPY",
		"-1500":      "-1,500 JPY",
		"1234567.25": "1,234,567.25 JPY",
		"-0.5":       "-0.5 JPY",
		// Beyond int64.
		"99999999999999999999":     "99,999,999,999,999,999,999 JPY",
		"-123456789012345678901.5": "-123,456,789,012,345,678,901.5 JPY",
	}
	for in, want := range cases {
		assert.Equal(t, want, f.Amount(decimal.RequireFromString(in)), in)
	}
}

func TestNoticeFor(t *testing.T) {
	_, ok := NoticeFor(nil)
	assert.False(t, ok)

	cases := []struct {
		err  error
		want Severity
	}{
		{core.ErrInvalidAmount, SeverityBlocking},
		{core.ErrMemoTooLong, SeverityBlocking},
		{core.ErrInvalidMemo, SeverityBlocking},
		{core.ErrTooManyItems, SeverityBlocking},
		{ErrResetNotConfirmed, SeverityBlocking},
		{core.ErrEmptyCategory, SeverityBlocking},
		{core.ErrStorageWrite, SeverityWarning},
		{core.ErrStorageRead, SeverityWarning},
		{core.ErrNotFound, SeverityInfo},
	}
	for _, tc := range cases {
		n, ok := NoticeFor(tc.err)
		require.True(t, ok)
		assert.Equal(t, tc.want, n.Severity, tc.err.Error())
		assert.NotEmpty(t, n.Message)
	}
	assert.Equal(t, "blocking", SeverityBlocking.String())
}

func TestNewSetSharesStore(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	set := NewSet(store, utcFormatter(), 4, fixed(t0), nil)

	p, err := set.Entry.Submit("300")
	require.NoError(t, err)
	rec, err := set.Tagging.CommitIndex(ctx, p, 0)
	require.NoError(t, err)

	assert.Len(t, set.Results.View().Rows, 1)
	_, err = set.Memo.Save(ctx, rec.ID, "coffee")
	require.NoError(t, err)
	assert.Equal(t, "coffee", set.Results.View().Rows[0].Memo)

	pts := set.Graph.Series(set.Graph.CurrentMonth())
	require.Len(t, pts, 3)
	assert.Equal(t, "-300円", pts[2].Display)
}

func TestResultsShowHugeAmountsExactly(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, fixed(t0))
	set := NewSet(store, utcFormatter(), 2, fixed(t0), nil)

	p, err := set.Entry.Submit("99999999999999999999")
	require.NoError(t, err)
	_, err = set.Tagging.Commit(ctx, p, core.CategoryItem{Kind: core.Income, Label: "Income"})
	require.NoError(t, err)

	view := set.Results.View()
	assert.Equal(t, "99,999,999,999,999,999,999円", view.Balance)
	assert.Equal(t, "99,999,999,999,999,999,999円", view.Rows[0].Amount)
	pts := set.Graph.Series(set.Graph.CurrentMonth())
	assert.Equal(t, "99,999,999,999,999,999,999円", pts[len(pts)-1].Display)
}

func TestResultsResetWriteFailureNotLoggedAsDone(t *testing.T) {
	ctx := context.Background()
	store, b := newStore(t, fixed(t0))
	_, err := NewTagging(store, nil).CommitIndex(ctx, PendingEntry{Amount: decimal.NewFromInt(1)}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	res := NewResults(store, utcFormatter(), log.New(log.Config{Output: &buf}))

	b.fail(true, false)
	view, err := res.ResetAll(ctx, true)
	assert.ErrorIs(t, err, core.ErrStorageWrite)
	assert.Empty(t, view.Rows)
	assert.NotContains(t, buf.String(), "all records reset")

	b.fail(false, false)
	_, err = res.ResetAll(ctx, true)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "all records reset")
}
