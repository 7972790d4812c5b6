// Package memory implements core.Repository on top of a mutex-guarded map.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/depot/pkg/core"
)

// Store is a concurrency-safe, identifier-keyed collection of T.
// Every instance owns its map and its lock; stores never share state.
type Store[T any] struct {
	mu       sync.RWMutex
	name     string
	items    map[string]T
	ids      IDGenerator
	broker   *broker
	logger   *slog.Logger
	readOnly bool

	creates uint64
	puts    uint64
	deletes uint64
}

// New creates a Store named name, empty unless WithSeed is given.
func New[T any](name string, opts ...Option) *Store[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.ids == nil {
		o.ids = Sequence(DefaultPrefix)
	}

	s := &Store[T]{
		name:     name,
		items:    make(map[string]T),
		ids:      o.ids,
		broker:   newBroker(o.eventBuffer, o.logger),
		logger:   o.logger,
		readOnly: o.readOnly,
	}
	if o.seed != nil {
		entries, ok := o.seed.(map[string]T)
		if !ok {
			panic(fmt.Sprintf("memory: seed of type %T cannot populate store %q of %T", o.seed, name, *new(T)))
		}
		s.Seed(entries)
	}
	return s
}

// Name returns the collection name.
func (s *Store[T]) Name() string {
	return s.name
}

// Get returns the entity stored at id.
func (s *Store[T]) Get(id string) (T, error) {
	v, ok := s.Lookup(id)
	if !ok {
		return v, core.NewNotFound(s.name, id)
	}
	return v, nil
}

// Lookup returns the entity stored at id and whether it exists.
func (s *Store[T]) Lookup(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return core.Clone(v), true
}

// List returns a snapshot of every entry taken under a single read lock.
func (s *Store[T]) List() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]T, len(s.items))
	for id, v := range s.items {
		out[id] = core.Clone(v)
	}
	return out
}

// Keys returns the identifiers in lexical order.
func (s *Store[T]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.items))
}

// Len returns the number of entries.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Create stores entity under a fresh identifier. Generation and insertion
// share one critical section, so concurrent creates never collide.
func (s *Store[T]) Create(entity T) (string, T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		var zero T
		return "", zero, core.ErrReadOnly
	}

	id := s.ids.Next(func(candidate string) bool {
		_, exists := s.items[candidate]
		return exists
	})
	s.items[id] = core.Clone(entity)
	s.creates++
	s.emit(core.EventCreate, id)

	if s.logger != nil {
		s.logger.Debug("entity created", "collection", s.name, "id", id)
	}
	return id, core.Clone(entity), nil
}

// Put creates or replaces the entity at id.
func (s *Store[T]) Put(id string, entity T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		var zero T
		return zero, core.ErrReadOnly
	}

	s.put(id, entity)
	if s.logger != nil {
		s.logger.Debug("entity stored", "collection", s.name, "id", id)
	}
	return core.Clone(entity), nil
}

// Delete removes the entity at id.
func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return core.ErrReadOnly
	}
	if _, ok := s.items[id]; !ok {
		return core.NewNotFound(s.name, id)
	}

	delete(s.items, id)
	s.deletes++
	s.emit(core.EventDelete, id)

	if s.logger != nil {
		s.logger.Debug("entity deleted", "collection", s.name, "id", id)
	}
	return nil
}

// Seed upserts entries in one critical section. Unlike Put it ignores
// read-only mode.
func (s *Store[T]) Seed(entries map[string]T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range slices.Sorted(maps.Keys(entries)) {
		s.put(id, entries[id])
	}
	if s.logger != nil && len(entries) > 0 {
		s.logger.Debug("collection seeded", "collection", s.name, "count", len(entries))
	}
}

// Watch streams change events until ctx is done.
func (s *Store[T]) Watch(ctx context.Context) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, ch := s.broker.subscribe()
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.broker.unsubscribe(id)
		return nil
	})
	return ch, nil
}

// put must be called with the write lock held.
func (s *Store[T]) put(id string, entity T) {
	eType := core.EventModify
	if _, exists := s.items[id]; !exists {
		eType = core.EventCreate
	}
	s.items[id] = core.Clone(entity)
	s.puts++
	s.emit(eType, id)
}

func (s *Store[T]) emit(t core.EventType, id string) {
	s.broker.publish(core.Event{
		Collection: s.name,
		Type:       t,
		ID:         id,
		Timestamp:  time.Now(),
	})
}

var _ core.Repository[struct{}] = (*Store[struct{}])(nil)
var _ core.Watchable = (*Store[struct{}])(nil)
