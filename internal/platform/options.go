package platform

import (
	"log/slog"
)

// ID strategies accepted by WithIDStrategy.
const (
	IDSequence = "sequence"
	IDUUID     = "uuid"
)

// options holds the internal configuration for a depot App.
type options struct {
	logger       *slog.Logger
	prefix       string
	idStrategy   string
	seedDir      string
	watchSeeds   bool
	readOnly     bool
	eventBuffer  int
	builtinSeeds bool
}

// Option defines a functional option for configuring an App.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:       nil,
		prefix:       "/api/v2",
		idStrategy:   IDSequence,
		seedDir:      "",
		watchSeeds:   false,
		readOnly:     false,
		eventBuffer:  0,
		builtinSeeds: true,
	}
}

// WithLogger sets the logger shared by the stores, the router and the seed loader.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPrefix sets the path prefix collections are mounted under.
// An empty prefix mounts them at the root.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithIDStrategy selects how Create assigns identifiers: "sequence"
// (collection prefix plus counter, e.g. todo4) or "uuid".
func WithIDStrategy(strategy string) Option {
	return func(o *options) {
		o.idStrategy = strategy
	}
}

// WithSeedDir loads JSON/YAML seed files from dir at startup.
// Seed files are applied after the built-in samples and win on conflicts.
func WithSeedDir(dir string) Option {
	return func(o *options) {
		o.seedDir = dir
	}
}

// WithWatchSeeds reloads seed files whenever they change while the App runs.
// It has no effect without WithSeedDir.
func WithWatchSeeds(enabled bool) Option {
	return func(o *options) {
		o.watchSeeds = enabled
	}
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
// Seeds still apply.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithEventBuffer sets the per-watcher event buffer of every store.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithBuiltinSeeds controls whether collections start with the sample records.
// Enabled by default.
func WithBuiltinSeeds(enabled bool) Option {
	return func(o *options) {
		o.builtinSeeds = enabled
	}
}
