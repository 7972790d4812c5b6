package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Collection     string `json:"collection"`
	Size           int    `json:"size"`
	RepositoryType string `json:"repository_type"`
	Watchable      bool   `json:"watchable"`
}

// State implements introspection.Introspectable.
func (s *Service[T]) State() any {
	repoType := "repository"
	if comp, ok := s.repo.(introspection.Component); ok {
		repoType = comp.ComponentType()
	}
	_, watchable := s.repo.(Watchable)

	return ServiceState{
		Collection:     s.repo.Name(),
		Size:           s.repo.Len(),
		RepositoryType: repoType,
		Watchable:      watchable,
	}
}

// ComponentType implements introspection.Component.
func (s *Service[T]) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service[struct{}])(nil)
var _ introspection.Component = (*Service[struct{}])(nil)
