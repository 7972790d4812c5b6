package core

import (
	"context"
	"errors"
)

// Service handles the business rules for one collection.
type Service[T any] struct {
	repo Repository[T]
}

// NewService creates a new Service.
func NewService[T any](repo Repository[T]) *Service[T] {
	return &Service[T]{repo: repo}
}

// Name returns the underlying collection name.
func (s *Service[T]) Name() string {
	return s.repo.Name()
}

// Get retrieves an entity.
func (s *Service[T]) Get(id string) (T, error) {
	if id == "" {
		var zero T
		return zero, ErrInvalidID
	}
	return s.repo.Get(id)
}

// List retrieves all entities.
func (s *Service[T]) List() map[string]T {
	return s.repo.List()
}

// Create validates entity and stores it under a generated ID.
func (s *Service[T]) Create(entity T) (string, T, error) {
	if err := Validate(entity); err != nil {
		var zero T
		return "", zero, err
	}
	return s.repo.Create(entity)
}

// Put validates entity and stores it at id, replacing any previous value.
func (s *Service[T]) Put(id string, entity T) (T, error) {
	var zero T
	if id == "" {
		return zero, ErrInvalidID
	}
	if err := Validate(entity); err != nil {
		return zero, err
	}
	return s.repo.Put(id, entity)
}

// Delete removes an entity.
func (s *Service[T]) Delete(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	return s.repo.Delete(id)
}

// Watch observes changes in the repository if supported.
func (s *Service[T]) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// Validate runs entity's own checks when it implements Validator.
func Validate[T any](entity T) error {
	if v, ok := any(entity).(Validator); ok {
		return v.Validate()
	}
	return nil
}
