package core

import "context"

// Repository defines the contract of a single identifier-keyed collection.
// Adhering to this interface keeps the routing layer independent of
// how entities are held (in memory today).
type Repository[T any] interface {
	// Name returns the collection name (e.g. "orders").
	Name() string

	// Get retrieves an entity by its ID. Absent IDs yield a *NotFoundError.
	Get(id string) (T, error)

	// Lookup is the comma-ok form of Get.
	Lookup(id string) (T, bool)

	// List returns a consistent snapshot of every entry.
	List() map[string]T

	// Create stores entity under a freshly generated ID and returns both.
	Create(entity T) (string, T, error)

	// Put creates or replaces the entity at id.
	Put(id string, entity T) (T, error)

	// Delete removes an entity by its ID. Absent IDs yield a *NotFoundError.
	Delete(id string) error

	// Len returns the number of entries.
	Len() int
}

// Watchable defines an interface for repositories that publish change events.
type Watchable interface {
	// Watch streams events until ctx is done, then closes the channel.
	Watch(ctx context.Context) (<-chan Event, error)
}
