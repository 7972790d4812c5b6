// Package seed loads collection contents from JSON and YAML files.
//
// A seed directory holds one file per collection, named after it
// (orders.yaml, users.json, ...), at any depth. Each file maps
// identifiers to entity fields:
//
//	todo1:
//	  task: build an API
//	todo2:
//	  task: profit!
package seed

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every supported seed file below the seed directory.
const DefaultPattern = "**/*.{json,yaml,yml}"

// Set maps collection names to their records.
type Set map[string]Records

// Collections returns the collection names in lexical order.
func (s Set) Collections() []string {
	return slices.Sorted(maps.Keys(s))
}

// Loader discovers and parses seed files.
type Loader struct {
	serializers map[string]Serializer
	pattern     string
	logger      *slog.Logger
}

// Option defines a functional option for configuring a Loader.
type Option func(*Loader)

// WithSerializer registers a serializer for a file extension (e.g. ".toml").
func WithSerializer(ext string, s Serializer) Option {
	return func(l *Loader) {
		l.serializers[ext] = s
	}
}

// WithPattern overrides the doublestar pattern used to find seed files.
func WithPattern(pattern string) Option {
	return func(l *Loader) {
		l.pattern = pattern
	}
}

// WithLogger sets the logger for the loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with the default serializers.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		serializers: DefaultSerializers(),
		pattern:     DefaultPattern,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses every seed file below dir. Files for the same collection are
// merged in path order, later files overriding earlier ones per identifier.
func (l *Loader) Load(dir string) (Set, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), l.pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan seed dir %s: %w", dir, err)
	}
	slices.Sort(matches)

	set := make(Set)
	for _, rel := range matches {
		collection, records, err := l.LoadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		if set[collection] == nil {
			set[collection] = make(Records, len(records))
		}
		maps.Copy(set[collection], records)
	}

	if l.logger != nil {
		l.logger.Debug("seed files loaded", "dir", dir, "files", len(matches), "collections", len(set))
	}
	return set, nil
}

// LoadFile parses a single seed file and returns the collection it targets.
func (l *Loader) LoadFile(file string) (string, Records, error) {
	ext := strings.ToLower(filepath.Ext(file))
	s, ok := l.serializers[ext]
	if !ok {
		return "", nil, fmt.Errorf("no serializer for %s", file)
	}

	f, err := os.Open(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	records, err := s.Parse(f)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return CollectionOf(file), records, nil
}

// Matches reports whether rel (slash-separated, relative to the seed dir)
// is a seed file for this loader.
func (l *Loader) Matches(rel string) bool {
	ok, err := doublestar.Match(l.pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// CollectionOf derives the collection name from a seed file path.
func CollectionOf(file string) string {
	base := path.Base(filepath.ToSlash(file))
	return strings.TrimSuffix(base, path.Ext(base))
}
