package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// MaxMemoLength is the memo limit in characters (code points, not bytes).
const MaxMemoLength = 100

type (
	// Kind is the polarity of a category: money in or money out.
	Kind string

	// Record is one ledger entry. Only Memo may change after creation.
	Record struct {
		ID        string
		Timestamp time.Time
		Category  string
		Amount    decimal.Decimal // negative = expense, non-negative = income
		Memo      string
	}

	// Ledger is the ordered record list, most recent first.
	Ledger []Record
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrStorageRead  = errors.New("storage read error")
	ErrStorageWrite = errors.New("storage write error")

	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrEmptyCategory = fmt.Errorf("%w: empty category", ErrValidation)
	ErrInvalidKind   = fmt.Errorf("%w: invalid kind", ErrValidation)
	ErrMemoTooLong   = fmt.Errorf("%w: memo too long (max %d characters)", ErrValidation, MaxMemoLength)
	ErrInvalidMemo   = fmt.Errorf("%w: memo is not valid UTF-8", ErrValidation)
)

func (k Kind) String() string {
	return string(k)
}

// Validate reports whether k is income or expense.
func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, string(k))
	}
}

// ParseKind accepts "income" or "expense" in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Signed applies the kind's sign convention to a magnitude: expenses are
// stored negative, income non-negative.
func (k Kind) Signed(magnitude decimal.Decimal) decimal.Decimal {
	m := magnitude.Abs()
	if k == Expense {
		return m.Neg()
	}
	return m
}

// ValidateMemo checks the memo encoding and length limit.
func ValidateMemo(memo string) error {
	if !utf8.ValidString(memo) {
		return ErrInvalidMemo
	}
	if utf8.RuneCountInString(memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	return nil
}

// Kind derives the record's polarity from the stored amount sign.
func (r Record) Kind() Kind {
	if r.Amount.IsNegative() {
		return Expense
	}
	return Income
}

// Month returns the calendar month the record falls in, in loc.
func (r Record) Month(loc *time.Location) MonthKey {
	if loc == nil {
		loc = time.UTC
	}
	t := r.Timestamp.In(loc)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("empty record id")
	}
	if r.Timestamp.IsZero() {
		return errors.New("zero record timestamp")
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return ValidateMemo(r.Memo)
}

// Clone returns a copy that does not share the backing array.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the record with id, or -1.
func (l Ledger) Index(id string) int {
	for i, r := range l {
		if r.ID == id {
			return i
		}
	}
	return -1
}
