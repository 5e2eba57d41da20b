// Package ledger is the record store: the single owner of the ledger and
// of the category item list, and the only writer of their blob keys.
//
// The in-memory ledger is authoritative between refreshes. Every mutation
// updates it and then rewrites the whole encoded ledger to the blob store
// before returning, so persistence costs O(n) per mutation. That is fine
// for a personal ledger of a few thousand records and is the scaling limit
// of this design.
//
// A failed write does not roll back the in-memory change: the operation
// returns its normal result together with an error wrapping
// core.ErrStorageWrite, which callers surface as a warning.
//
// A key whose last read failed with an I/O error is not loaded. Mutations
// reload it first; while it stays unreadable, changes are kept in memory
// only and never overwrite the stored data. A blob that was read but could
// not be parsed counts as loaded and is replaced by the next write.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"kakeibo/internal/blob"
	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

type Store struct {
	blob   blob.Store
	logger *log.Logger
	now    func() time.Time
	newID  func() string

	// mu serializes every read-modify-write of either blob key.
	mu       sync.Mutex
	records  core.Ledger
	items    []core.CategoryItem
	revision uint64

	// false until the key has been read without an I/O error
	recordsLoaded bool
	itemsLoaded   bool

	refresh singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the store logs under the ledger component.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(log.ComponentLedger) }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New returns an empty store over b. Call Refresh to load persisted data.
func New(b blob.Store, opts ...Option) *Store {
	s := &Store{
		blob:    b,
		logger:  log.Discard(),
		now:     time.Now,
		newID:   uuid.NewString,
		records: core.Ledger{},
		items:   core.DefaultCategoryItems(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted ledger. An absent key is an empty ledger. A
// blob that cannot be read or parsed yields an empty ledger and an error
// wrapping core.ErrStorageRead.
func Load(ctx context.Context, b blob.Store) (core.Ledger, error) {
	l, _, err := readRecords(ctx, b)
	return l, err
}

// readRecords is Load that also reports whether the key could be read at
// all. A parse failure still counts as read.
func readRecords(ctx context.Context, b blob.Store) (core.Ledger, bool, error) {
	raw, ok, err := b.Get(ctx, RecordsKey)
	if err != nil {
		return core.Ledger{}, false, fmt.Errorf("%w: %v", core.ErrStorageRead, err)
	}
	if !ok {
		return core.Ledger{}, true, nil
	}
	l, err := DecodeLedger(raw)
	if err != nil {
		return core.Ledger{}, true, fmt.Errorf("%w: %v", core.ErrStorageRead, err)
	}
	return l, true, nil
}

func readItems(ctx context.Context, b blob.Store) ([]core.CategoryItem, bool, error) {
	raw, ok, err := b.Get(ctx, ItemsKey)
	if err != nil {
		return core.DefaultCategoryItems(), false, fmt.Errorf("%w: %v", core.ErrStorageRead, err)
	}
	if !ok {
		return core.DefaultCategoryItems(), true, nil
	}
	items, err := DecodeItems(raw)
	if err != nil {
		return core.DefaultCategoryItems(), true, fmt.Errorf("%w: %v", core.ErrStorageRead, err)
	}
	return items, true, nil
}

// Refresh re-reads both blobs. Unreadable data is treated as empty (or as
// the default item list), logged, and reported through the returned error;
// the store stays usable either way. Concurrent calls share one read.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.refresh.Do("refresh", func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		records, recLoaded, recErr := readRecords(ctx, s.blob)
		items, itemLoaded, itemErr := readItems(ctx, s.blob)
		s.records, s.recordsLoaded = records, recLoaded
		s.items, s.itemsLoaded = items, itemLoaded
		s.revision++

		err := errors.Join(recErr, itemErr)
		if err != nil {
			s.logger.OperationFailed(ctx, log.OpRefresh, err)
			return nil, err
		}
		s.logger.DebugContext(ctx, "ledger refreshed", log.FieldCount, len(records), log.FieldRevision, s.revision)
		return nil, nil
	})
	return err
}

// List returns a copy of the ledger, most recent first.
func (s *Store) List() core.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clone()
}

// Get returns the record with id.
func (s *Store) Get(id string) (core.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.records.Index(id); i >= 0 {
		return s.records[i], true
	}
	return core.Record{}, false
}

// Revision increases on every change to the in-memory state, including
// refreshes. Readers use it as a cache key.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Snapshot returns a copy of the ledger together with the revision it
// belongs to.
func (s *Store) Snapshot() (core.Ledger, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clone(), s.revision
}

// Append creates a record and prepends it. The magnitude is used as an
// absolute value and negated for expenses; entry capture is responsible
// for rejecting zero.
func (s *Store) Append(ctx context.Context, magnitude decimal.Decimal, category string, kind core.Kind) (core.Record, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.Record{}, core.ErrEmptyCategory
	}
	if err := kind.Validate(); err != nil {
		return core.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureRecords(ctx)

	rec := core.Record{
		ID:        s.newID(),
		Timestamp: s.now().UTC().Round(0),
		Category:  category,
		Amount:    kind.Signed(magnitude),
	}
	next := make(core.Ledger, 0, len(s.records)+1)
	next = append(next, rec)
	s.records = append(next, s.records...)
	s.revision++

	err := s.persistRecords(ctx, log.OpAppend)
	s.logger.InfoContext(ctx, "record appended", log.NewFields().WithOperation(log.OpAppend).WithRecord(rec).ToSlice()...)
	return rec, err
}

// UpdateMemo replaces the memo of record id and nothing else.
func (s *Store) UpdateMemo(ctx context.Context, id, memo string) (core.Record, error) {
	if err := core.ValidateMemo(memo); err != nil {
		return core.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureRecords(ctx)

	i := s.records.Index(id)
	if i < 0 {
		return core.Record{}, fmt.Errorf("%w: record %q", core.ErrNotFound, id)
	}
	next := s.records.Clone()
	next[i].Memo = memo
	s.records = next
	s.revision++

	err := s.persistRecords(ctx, log.OpUpdateMemo)
	s.logger.InfoContext(ctx, "memo updated", log.FieldOperation, log.OpUpdateMemo, log.FieldRecordID, id)
	return next[i], err
}

// Delete removes record id. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureRecords(ctx)

	i := s.records.Index(id)
	if i < 0 {
		s.logger.DebugContext(ctx, "delete of unknown record ignored", log.FieldRecordID, id)
		return nil
	}
	next := make(core.Ledger, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	s.records = append(next, s.records[i+1:]...)
	s.revision++

	err := s.persistRecords(ctx, log.OpDelete)
	s.logger.InfoContext(ctx, "record deleted", log.FieldOperation, log.OpDelete, log.FieldRecordID, id)
	return err
}

// ResetAll empties the ledger and removes its blob. Category items are
// kept. Confirming intent is the caller's job.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	s.records = core.Ledger{}
	s.revision++

	if err := s.blob.Remove(ctx, RecordsKey); err != nil {
		err = fmt.Errorf("%w: remove %s: %v", core.ErrStorageWrite, RecordsKey, err)
		s.logger.OperationFailed(ctx, log.OpReset, err)
		return err
	}
	s.recordsLoaded = true
	s.logger.InfoContext(ctx, "ledger reset", log.FieldOperation, log.OpReset, log.FieldCount, n)
	return nil
}

// ensureRecords retries reading the ledger when the last read failed with
// an I/O error. Callers hold mu.
func (s *Store) ensureRecords(ctx context.Context) {
	if s.recordsLoaded {
		return
	}
	records, loaded, err := readRecords(ctx, s.blob)
	if err != nil {
		s.logger.OperationFailed(ctx, log.OpLoad, err, log.FieldKey, RecordsKey)
	}
	if !loaded {
		return
	}
	s.records, s.recordsLoaded = records, true
	s.revision++
}

// persistRecords writes the whole ledger. Callers hold mu.
func (s *Store) persistRecords(ctx context.Context, op string) error {
	if !s.recordsLoaded {
		err := fmt.Errorf("%w: %s: stored ledger unreadable, change kept in memory only", core.ErrStorageWrite, RecordsKey)
		s.logger.OperationFailed(ctx, op, err, log.FieldKey, RecordsKey)
		return err
	}
	raw, err := EncodeLedger(s.records)
	if err == nil {
		err = s.blob.Set(ctx, RecordsKey, raw)
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", core.ErrStorageWrite, RecordsKey, err)
		s.logger.OperationFailed(ctx, op, err, log.FieldKey, RecordsKey)
		return err
	}
	return nil
}

// Close releases the blob store if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.blob.(blob.Closer); ok {
		return c.Close()
	}
	return nil
}
