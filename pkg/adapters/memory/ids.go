package memory

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for entities created without one.
// Next is always called inside the store's write lock; taken reports whether
// a candidate is already present in the collection.
type IDGenerator interface {
	Next(taken func(id string) bool) string
	Strategy() string
}

// DefaultPrefix is the prefix used by Sequence when none is given.
const DefaultPrefix = "item"

type sequence struct {
	prefix string
	n      atomic.Uint64
}

// Sequence returns a generator yielding prefix1, prefix2, ... from a monotonic
// counter. Numbers are never handed out twice, even after deletes, and IDs
// already present in the collection (seeded or written by callers) are skipped.
func Sequence(prefix string) IDGenerator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &sequence{prefix: prefix}
}

func (s *sequence) Next(taken func(string) bool) string {
	for {
		id := s.prefix + strconv.FormatUint(s.n.Add(1), 10)
		if !taken(id) {
			return id
		}
	}
}

func (s *sequence) Strategy() string {
	return "sequence"
}

type uuids struct{}

// UUIDs returns a generator of time-ordered UUIDv7 strings.
func UUIDs() IDGenerator {
	return uuids{}
}

func (uuids) Next(taken func(string) bool) string {
	for {
		id := uuid.Must(uuid.NewV7()).String()
		if !taken(id) {
			return id
		}
	}
}

func (uuids) Strategy() string {
	return "uuid"
}
