package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"kakeibo/internal/blob/memory"
)

// failingBlob wraps a memory store and fails writes or reads on demand.
type failingBlob struct {
	*memory.Store
	mu       sync.Mutex
	failSet  bool
	failGet  bool
	setCalls int
}

var errDisk = errors.New("disk full")

func newFailingBlob() *failingBlob {
	return &failingBlob{Store: memory.New()}
}

func (f *failingBlob) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, errDisk
	}
	return f.Store.Get(ctx, key)
}

func (f *failingBlob) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.setCalls++
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errDisk
	}
	return f.Store.Set(ctx, key, value)
}

func (f *failingBlob) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errDisk
	}
	return f.Store.Remove(ctx, key)
}

// fakeClock ticks one minute per call starting at start.
func fakeClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
