package depot

import (
	"log/slog"

	"github.com/aretw0/depot/internal/platform"
	"github.com/aretw0/depot/pkg/core"
)

// --- Types ---

// App is a running set of resource collections and their HTTP router.
type App = platform.App

// Service is a public alias for the collection service.
type Service[T any] = core.Service[T]

// Config is the file-level server configuration (depot.yaml).
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring an App.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithPrefix sets the path prefix collections are mounted under (default /api/v2).
func WithPrefix(prefix string) Option {
	return platform.WithPrefix(prefix)
}

// WithIDStrategy selects "sequence" (default) or "uuid" identifiers.
func WithIDStrategy(strategy string) Option {
	return platform.WithIDStrategy(strategy)
}

// WithSeedDir loads JSON/YAML seed files from dir at startup.
func WithSeedDir(dir string) Option {
	return platform.WithSeedDir(dir)
}

// WithWatchSeeds reloads seed files as they change once the App is started.
func WithWatchSeeds(enabled bool) Option {
	return platform.WithWatchSeeds(enabled)
}

// WithReadOnly rejects every mutation.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithEventBuffer sets the per-watcher event buffer size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithBuiltinSeeds controls whether collections start with sample records.
func WithBuiltinSeeds(enabled bool) Option {
	return platform.WithBuiltinSeeds(enabled)
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return platform.DefaultConfig()
}

// LoadConfig reads a depot.yaml file merged over the defaults.
func LoadConfig(path string) (*Config, error) {
	return platform.LoadConfig(path)
}

// --- Factory ---

// New creates a new App.
func New(opts ...Option) (*App, error) {
	return platform.New(opts...)
}
