package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/five82/emphub/internal/model"
)

// ErrReadOnly is returned by Create on collections without a create path.
var ErrReadOnly = errors.New("collection is read-only")

// Source loads every record of one kind for a user.
type Source[T any] interface {
	FetchByUser(ctx context.Context, userID int64) ([]T, error)
}

// Sink creates a record from a payload and returns the confirmed record.
type Sink[P, T any] interface {
	Create(ctx context.Context, payload P) (T, error)
}

// Snapshot is a point-in-time copy of a collection.
type Snapshot[T any] struct {
	Items               []T
	Loaded              bool // at least one load succeeded
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive load failures
}

// IsOffline returns true when loads have failed more than once in a row.
func (s Snapshot[T]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Collection holds the confirmed records of one kind, most recent first
// after a create and in server order after a load.
type Collection[T model.Record, P any] struct {
	name   string
	source Source[T]
	sink   Sink[P, T]

	mu       sync.RWMutex
	snapshot Snapshot[T]
}

// NewCollection builds an empty collection. A nil sink makes it read-only.
func NewCollection[T model.Record, P any](name string, source Source[T], sink Sink[P, T]) *Collection[T, P] {
	return &Collection[T, P]{name: name, source: source, sink: sink}
}

// Name returns the collection's resource name.
func (c *Collection[T, P]) Name() string { return c.name }

// ReadOnly reports whether Create is unavailable.
func (c *Collection[T, P]) ReadOnly() bool { return c.sink == nil }

// LoadInitial fetches all records for userID and replaces the held sequence.
// Failures are recorded on the snapshot and logged, never returned: the
// previous sequence stays in place. The resulting items are returned.
func (c *Collection[T, P]) LoadInitial(ctx context.Context, userID int64) []T {
	if c.source == nil {
		return c.Items()
	}
	items, err := c.source.FetchByUser(ctx, userID)
	if err != nil {
		log.Printf("%s load failed: %v", c.name, err)
	}
	c.update(items, err)
	return c.Items()
}

// Reload re-fetches on explicit request with the same semantics as
// LoadInitial.
func (c *Collection[T, P]) Reload(ctx context.Context, userID int64) []T {
	return c.LoadInitial(ctx, userID)
}

// Create sends payload through the sink and, on success, prepends the
// confirmed record before returning it. On failure the held records are
// untouched.
func (c *Collection[T, P]) Create(ctx context.Context, payload P) (T, error) {
	var zero T
	if c.sink == nil {
		return zero, fmt.Errorf("create %s: %w", c.name, ErrReadOnly)
	}
	record, err := c.sink.Create(ctx, payload)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, held := range c.snapshot.Items {
		if held.RecordID() == record.RecordID() {
			log.Printf("%s create returned existing id %d; not inserted", c.name, record.RecordID())
			return record, nil
		}
	}
	items := make([]T, 0, len(c.snapshot.Items)+1)
	items = append(items, record)
	c.snapshot.Items = append(items, c.snapshot.Items...)
	return record, nil
}

// Items returns a copy of the held records.
func (c *Collection[T, P]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.snapshot.Items)
}

// Len returns the number of held records.
func (c *Collection[T, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot.Items)
}

// Snapshot returns a copy of the current snapshot.
func (c *Collection[T, P]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.snapshot
	snap.Items = cloneItems(c.snapshot.Items)
	if c.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", c.snapshot.LastError)
	}
	return snap
}

// update replaces the held records. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (c *Collection[T, P]) update(items []T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.snapshot.LastError = err
		c.snapshot.LastUpdated = time.Now()
		c.snapshot.ConsecutiveFailures++
		return
	}

	c.snapshot.Items = dedupe(items)
	c.snapshot.Loaded = true
	c.snapshot.LastError = nil
	c.snapshot.LastUpdated = time.Now()
	c.snapshot.ConsecutiveFailures = 0
}

// dedupe keeps the first occurrence of every record ID.
func dedupe[T model.Record](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.RecordID()]; ok {
			continue
		}
		seen[item.RecordID()] = struct{}{}
		out = append(out, item)
	}
	return out
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
