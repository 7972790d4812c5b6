// Package core holds the domain contracts shared by every resource collection.
package core

import (
	"fmt"
	"time"
)

// EventType represents the kind of change applied to a collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in a collection.
type Event struct {
	Collection string
	Type       EventType
	ID         string
	Timestamp  time.Time
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s/%s", e.Type, e.Collection, e.ID)
}

// Validator is implemented by entities that check their own field presence.
type Validator interface {
	Validate() error
}

// Cloner is implemented by entities holding reference-typed fields (maps, slices).
// Stores call Clone on the way in and out so callers never share memory with the collection.
type Cloner[T any] interface {
	Clone() T
}

// Clone returns a deep copy of v when T implements Cloner, or v itself otherwise.
func Clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
