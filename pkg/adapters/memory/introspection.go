package memory

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Name       string `json:"name"`
	Size       int    `json:"size"`
	IDStrategy string `json:"id_strategy"`
	ReadOnly   bool   `json:"read_only"`
	Watchers   int    `json:"watchers"`
	Creates    uint64 `json:"creates"`
	Puts       uint64 `json:"puts"`
	Deletes    uint64 `json:"deletes"`
}

// State implements introspection.Introspectable.
func (s *Store[T]) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Name:       s.name,
		Size:       len(s.items),
		IDStrategy: s.ids.Strategy(),
		ReadOnly:   s.readOnly,
		Watchers:   s.broker.count(),
		Creates:    s.creates,
		Puts:       s.puts,
		Deletes:    s.deletes,
	}
}

// ComponentType implements introspection.Component.
func (s *Store[T]) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store[struct{}])(nil)
var _ introspection.Component = (*Store[struct{}])(nil)
