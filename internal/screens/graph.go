package screens

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/cache"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
)

// ChartPoint is one bar of the cumulative chart.
type ChartPoint struct {
	Month      core.MonthKey
	Label      string
	Total      decimal.Decimal
	Cumulative decimal.Decimal
	Display    string
}

type seriesKey struct {
	revision uint64
	through  core.MonthKey
}

// Graph computes the cumulative balance chart. Series are cached per store
// revision, so any mutation or refresh invalidates them.
type Graph struct {
	store  *ledger.Store
	format Formatter
	series *cache.LRUCache[seriesKey, []ChartPoint]
	now    func() time.Time
	logger *log.Logger
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithGraphClock sets the clock that decides the current month.
func WithGraphClock(now func() time.Time) GraphOption {
	return func(g *Graph) { g.now = now }
}

// WithGraphLogger sets the logger.
func WithGraphLogger(l *log.Logger) GraphOption {
	return func(g *Graph) { g.logger = l.WithComponent(log.ComponentScreens) }
}

func NewGraph(store *ledger.Store, format Formatter, cacheSize int, opts ...GraphOption) *Graph {
	g := &Graph{
		store:  store,
		format: format,
		series: cache.NewLRUCache[seriesKey, []ChartPoint](cacheSize, 0),
		now:    time.Now,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CurrentMonth is the month containing now in the display location.
func (g *Graph) CurrentMonth() core.MonthKey {
	return core.MonthOf(g.now(), g.location())
}

// Refresh reloads persisted data, then returns the series through the
// current month.
func (g *Graph) Refresh(ctx context.Context) ([]ChartPoint, error) {
	err := g.store.Refresh(ctx)
	return g.Series(g.CurrentMonth()), err
}

// Series returns the cumulative series from January of the earliest year
// with records through the given month. Callers must not modify the result.
func (g *Graph) Series(through core.MonthKey) []ChartPoint {
	if pts, ok := g.series.Get(seriesKey{revision: g.store.Revision(), through: through}); ok {
		return pts
	}

	records, rev := g.store.Snapshot()
	key := seriesKey{revision: rev, through: through}
	months := core.CumulativeByMonthIn(records, through, g.location())
	pts := make([]ChartPoint, 0, len(months))
	for _, m := range months {
		pts = append(pts, ChartPoint{
			Month:      m.Month,
			Label:      m.Month.String(),
			Total:      m.Total,
			Cumulative: m.Cumulative,
			Display:    g.format.Amount(m.Cumulative),
		})
	}
	g.series.Set(key, pts)
	g.logger.Debug("chart series computed", log.FieldMonth, through.String(), log.FieldRevision, key.revision, log.FieldCount, len(pts))
	return pts
}

// CacheStats exposes hit and miss counts of the series cache.
func (g *Graph) CacheStats() cache.Stats {
	return g.series.Stats()
}

func (g *Graph) location() *time.Location {
	if g.format.Location != nil {
		return g.format.Location
	}
	return time.Local
}
