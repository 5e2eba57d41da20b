package screens

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Formatter renders amounts and timestamps for display. Formatting never
// feeds back into stored values.
type Formatter struct {
	Suffix   string // appended to amounts, e.g. "円"
	Layout   string // time layout for rows
	Location *time.Location
}

func DefaultFormatter() Formatter {
	return Formatter{Suffix: "円", Layout: "2006/01/02 15:04", Location: time.Local}
}

// Amount formats d with thousands separators, keeping any fraction.
func (f Formatter) Amount(d decimal.Decimal) string {
	abs := d.Abs()
	whole := abs.Truncate(0)
	s := humanize.BigComma(whole.BigInt())
	if frac := abs.Sub(whole); !frac.IsZero() {
		s += strings.TrimPrefix(frac.String(), "0")
	}
	if d.IsNegative() {
		s = "-" + s
	}
	return s + f.Suffix
}

// Time formats t in the formatter's location.
func (f Formatter) Time(t time.Time) string {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	layout := f.Layout
	if layout == "" {
		layout = time.RFC3339
	}
	return t.In(loc).Format(layout)
}
