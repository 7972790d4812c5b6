package memory

import "log/slog"

// options holds the configuration of a Store.
type options struct {
	ids         IDGenerator
	logger      *slog.Logger
	eventBuffer int
	readOnly    bool
	seed        any // map[string]T, checked by New
}

// Option defines a functional option for configuring a Store.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		ids:         nil, // Sequence(DefaultPrefix), one per store
		logger:      nil,
		eventBuffer: defaultEventBuffer,
		readOnly:    false,
	}
}

// WithIDGenerator sets the strategy for identifiers assigned by Create.
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		o.ids = gen
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventBuffer sets the per-watcher event buffer size.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithReadOnly enables read-only mode.
// In this mode Create, Put and Delete return core.ErrReadOnly.
// Seed still applies, so a frozen store can be pre-populated at startup.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithSeed pre-populates the store with entries when it is created.
// The map type must match the store's entity type; New panics otherwise.
func WithSeed[T any](entries map[string]T) Option {
	return func(o *options) {
		o.seed = entries
	}
}
