// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/depot/pkg/core"
)

type storeSource struct {
	events      <-chan core.Event
	out         chan lifecycle.Event
	collections map[string]bool
	types       map[core.EventType]bool
}

// Option configures a store source.
type Option func(*storeSource)

// WithCollections forwards only events of the named collections.
// Without it every collection is forwarded.
func WithCollections(names ...string) Option {
	return func(s *storeSource) {
		if len(names) == 0 {
			return
		}
		s.collections = make(map[string]bool, len(names))
		for _, n := range names {
			s.collections[n] = true
		}
	}
}

// WithTypes forwards only events of the given change types.
func WithTypes(types ...core.EventType) Option {
	return func(s *storeSource) {
		if len(types) == 0 {
			return
		}
		s.types = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
}

// NewSource creates a lifecycle.Source that re-emits store events.
// The output channel closes when ctx is done or the input channel closes.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &storeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) accepts(e core.Event) bool {
	if s.collections != nil && !s.collections[e.Collection] {
		return false
	}
	if s.types != nil && !s.types[e.Type] {
		return false
	}
	return true
}

func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accepts(e) {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
