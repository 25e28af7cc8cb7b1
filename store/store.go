// Package store implements Orion's object store: a thread-safe, write-once,
// read-many mapping of object id to opaque value, with blocking reads until
// publication.
package store

import (
	"context"
	"sync"

	"github.com/SamarthMahendra/Orion/metrics"
	"github.com/SamarthMahendra/Orion/orion"
	"oss.nandlabs.io/golly/l3"
)

// Store is a thread-safe mapping of orion.ObjectId to orion.Value.
//
// Put publishes a value (write-once by convention; a second Put for the
// same id overwrites and logs a warning rather than rejecting — see
// DESIGN.md for why duplicate-put resolves this way). Get is non-blocking.
// GetBlocking suspends the caller until the value is published or ctx is
// done; composing a timeout is left to the caller, exactly as spec.md §4.1
// describes.
type Store struct {
	mu             sync.Mutex
	values         map[orion.ObjectId]orion.Value
	waiters        map[orion.ObjectId][]chan struct{}
	published      map[orion.ObjectId]bool
	publishedCount metrics.Counter
	log            l3.Logger
}

// New constructs an empty Store. A nil provider falls back to a no-op one.
func New(provider metrics.Provider) *Store {
	if provider == nil {
		provider = metrics.NewNoopProvider()
	}
	return &Store{
		values:    make(map[orion.ObjectId]orion.Value),
		waiters:   make(map[orion.ObjectId][]chan struct{}),
		published: make(map[orion.ObjectId]bool),
		publishedCount: provider.Counter(metrics.ObjectsPublished,
			metrics.WithDescription("objects published to the store"),
			metrics.WithUnit("1")),
		log: l3.Get(),
	}
}

// SetLogger replaces the store's logger, e.g. so runtime.WithLogger can
// propagate a caller-supplied logger down from Runtime construction.
func (s *Store) SetLogger(log l3.Logger) {
	s.log = log
}

// Put publishes value under id, releasing every blocked GetBlocking waiter
// for that id. Calling Put twice for the same id is undefined by spec;
// this implementation overwrites and logs a warning (Open Question,
// resolved in DESIGN.md).
func (s *Store) Put(id orion.ObjectId, value orion.Value) {
	s.mu.Lock()
	if s.published[id] {
		s.log.WarnF("store: duplicate put for object %q; overwriting", string(id))
	}
	s.values[id] = value
	s.published[id] = true
	waiters := s.waiters[id]
	delete(s.waiters, id)
	s.mu.Unlock()

	for _, ch := range waiters {
		close(ch)
	}
	s.publishedCount.Add(1)
}

// Get returns the value for id non-blocking, and whether it has been
// published yet.
func (s *Store) Get(id orion.ObjectId) (orion.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.published[id] {
		return nil, false
	}
	return s.values[id], true
}

// GetBlocking returns the value for id, blocking until it is published or
// ctx is done.
func (s *Store) GetBlocking(ctx context.Context, id orion.ObjectId) (orion.Value, error) {
	s.mu.Lock()
	if s.published[id] {
		v := s.values[id]
		s.mu.Unlock()
		return v, nil
	}
	ch := make(chan struct{})
	s.waiters[id] = append(s.waiters[id], ch)
	s.mu.Unlock()

	select {
	case <-ch:
		s.mu.Lock()
		v := s.values[id]
		s.mu.Unlock()
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
