package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthKey identifies a calendar month. Buckets are year-aware so that
// March 2025 and March 2026 never merge.
type MonthKey struct {
	Year  int
	Month time.Month // 1-12
}

// MonthPoint is one step of the cumulative chart series.
type MonthPoint struct {
	Month      MonthKey
	Total      decimal.Decimal // signed sum of the month's own records
	Cumulative decimal.Decimal // running sum through this month
}

// KindTotals splits a ledger into its income and expense sums. Expense is
// reported as a non-negative magnitude.
type KindTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthOf returns the key for t in loc (UTC when loc is nil).
func MonthOf(t time.Time, loc *time.Location) MonthKey {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is strictly earlier than o.
func (m MonthKey) Before(o MonthKey) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Next returns the following month, rolling over the year.
func (m MonthKey) Next() MonthKey {
	if m.Month == time.December {
		return MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return MonthKey{Year: m.Year, Month: m.Month + 1}
}

// ParseMonthKey parses "YYYY-MM".
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: month %q must be YYYY-MM", ErrValidation, s)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

// Balance is the exact sum of every amount in the ledger.
func Balance(records []Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// TotalsByKind sums income and expense separately.
func TotalsByKind(records []Record) KindTotals {
	totals := KindTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range records {
		if r.Amount.IsNegative() {
			totals.Expense = totals.Expense.Add(r.Amount.Neg())
		} else {
			totals.Income = totals.Income.Add(r.Amount)
		}
	}
	return totals
}

// MonthlyTotals buckets records by UTC calendar month.
func MonthlyTotals(records []Record) map[MonthKey]decimal.Decimal {
	return MonthlyTotalsIn(records, time.UTC)
}

// MonthlyTotalsIn buckets records by calendar month in loc and sums the
// signed amounts of each bucket. Amounts are never truncated.
func MonthlyTotalsIn(records []Record, loc *time.Location) map[MonthKey]decimal.Decimal {
	totals := make(map[MonthKey]decimal.Decimal)
	for _, r := range records {
		key := r.Month(loc)
		totals[key] = totals[key].Add(r.Amount)
	}
	return totals
}

// CumulativeByMonth is CumulativeByMonthIn with UTC buckets.
func CumulativeByMonth(records []Record, through MonthKey) []MonthPoint {
	return CumulativeByMonthIn(records, through, time.UTC)
}

// CumulativeByMonthIn returns the running balance per month, starting in
// January of the earliest year that has records (never later than January
// of through.Year) and ending at through inclusive. Records after through
// are ignored. Months without records carry the previous cumulative value.
func CumulativeByMonthIn(records []Record, through MonthKey, loc *time.Location) []MonthPoint {
	if through.Month < time.January || through.Month > time.December {
		return nil
	}
	totals := MonthlyTotalsIn(records, loc)

	startYear := through.Year
	for key := range totals {
		if key.Year < startYear {
			startYear = key.Year
		}
	}

	var points []MonthPoint
	running := decimal.Zero
	for m := (MonthKey{Year: startYear, Month: time.January}); !through.Before(m); m = m.Next() {
		total := totals[m]
		running = running.Add(total)
		points = append(points, MonthPoint{Month: m, Total: total, Cumulative: running})
	}
	return points
}

// SortedMonths returns the keys of a totals map in chronological order.
func SortedMonths(totals map[MonthKey]decimal.Decimal) []MonthKey {
	keys := make([]MonthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
