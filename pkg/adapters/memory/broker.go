package memory

import (
	"log/slog"
	"sync"

	"github.com/aretw0/depot/pkg/core"
)

const defaultEventBuffer = 100

// broker fans change events out to watchers without ever blocking a writer.
type broker struct {
	mu     sync.Mutex
	subs   map[uint64]chan core.Event
	next   uint64
	buffer int
	logger *slog.Logger
}

func newBroker(buffer int, logger *slog.Logger) *broker {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &broker{
		subs:   make(map[uint64]chan core.Event),
		buffer: buffer,
		logger: logger,
	}
}

func (b *broker) subscribe() (uint64, <-chan core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	ch := make(chan core.Event, b.buffer)
	b.subs[b.next] = ch
	return b.next, ch
}

func (b *broker) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// publish delivers e to every watcher with room in its buffer.
// Watchers that fall behind lose the event.
func (b *broker) publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			if b.logger != nil {
				b.logger.Debug("watcher buffer full, dropping event",
					"watcher", id, "collection", e.Collection, "id", e.ID, "type", e.Type)
			}
		}
	}
}

func (b *broker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
