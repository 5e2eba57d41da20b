package screens

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kakeibo/internal/blob/memory"
	"kakeibo/internal/ledger"
)

var t0 = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

type brokenBlob struct {
	*memory.Store
	mu      sync.Mutex
	failSet bool
	failGet bool
}

func (b *brokenBlob) fail(set, get bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failSet, b.failGet = set, get
}

func (b *brokenBlob) Get(ctx context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	fail := b.failGet
	b.mu.Unlock()
	if fail {
		return "", false, errors.New("io error")
	}
	return b.Store.Get(ctx, key)
}

func (b *brokenBlob) Set(ctx context.Context, key, value string) error {
	b.mu.Lock()
	fail := b.failSet
	b.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return b.Store.Set(ctx, key, value)
}

func (b *brokenBlob) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	fail := b.failSet
	b.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return b.Store.Remove(ctx, key)
}

func newStore(t *testing.T, clock func() time.Time) (*ledger.Store, *brokenBlob) {
	t.Helper()
	b := &brokenBlob{Store: memory.New()}
	n := 0
	s := ledger.New(b,
		ledger.WithClock(clock),
		ledger.WithIDGenerator(func() string { n++; return fmt.Sprintf("r%d", n) }),
	)
	require.NoError(t, s.Refresh(context.Background()))
	return s, b
}

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func utcFormatter() Formatter {
	f := DefaultFormatter()
	f.Location = time.UTC
	return f
}
