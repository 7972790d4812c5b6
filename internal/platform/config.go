package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name FindConfig looks for.
const ConfigFile = "depot.yaml"

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":5555"

// ErrConfigNotFound is returned by FindConfig when no config file exists
// between the start directory and the filesystem root.
var ErrConfigNotFound = errors.New("config not found")

// Config is the file-level configuration of a depot server.
type Config struct {
	Addr         string    `yaml:"addr"`
	Prefix       string    `yaml:"prefix"`
	IDStrategy   string    `yaml:"id_strategy"`
	ReadOnly     bool      `yaml:"read_only"`
	SeedDir      string    `yaml:"seed_dir"`
	WatchSeeds   bool      `yaml:"watch_seeds"`
	BuiltinSeeds *bool     `yaml:"builtin_seeds"`
	EventBuffer  int       `yaml:"event_buffer"`
	Log          LogConfig `yaml:"log"`
}

// LogConfig configures the server logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
	// File, when set, receives a debug-level copy of the log.
	File string `yaml:"file"`
}

// DefaultConfig returns a Config with the server defaults.
func DefaultConfig() Config {
	builtin := true
	return Config{
		Addr:         DefaultAddr,
		Prefix:       "/api/v2",
		IDStrategy:   IDSequence,
		BuiltinSeeds: &builtin,
		Log:          LogConfig{Level: "info"},
	}
}

// Merge applies non-zero values from source into c.
// Boolean switches can only be turned on, except BuiltinSeeds which is
// applied whenever source sets it.
func (c *Config) Merge(source *Config) {
	if source.Addr != "" {
		c.Addr = source.Addr
	}
	if source.Prefix != "" {
		c.Prefix = source.Prefix
	}
	if source.IDStrategy != "" {
		c.IDStrategy = source.IDStrategy
	}
	if source.ReadOnly {
		c.ReadOnly = true
	}
	if source.SeedDir != "" {
		c.SeedDir = source.SeedDir
	}
	if source.WatchSeeds {
		c.WatchSeeds = true
	}
	if source.BuiltinSeeds != nil {
		v := *source.BuiltinSeeds
		c.BuiltinSeeds = &v
	}
	if source.EventBuffer > 0 {
		c.EventBuffer = source.EventBuffer
	}
	if source.Log.Level != "" {
		c.Log.Level = source.Log.Level
	}
	if source.Log.File != "" {
		c.Log.File = source.Log.File
	}
}

// LoadConfig reads a YAML config file and merges it over the defaults.
// A relative seed_dir is resolved against the config file's directory.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if loaded.SeedDir != "" && !filepath.IsAbs(loaded.SeedDir) {
		loaded.SeedDir = filepath.Join(filepath.Dir(filename), loaded.SeedDir)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// FindConfig looks upwards from startDir for a depot.yaml file and returns
// its absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrConfigNotFound
}

// Options translates the configuration into App options.
func (c Config) Options() []Option {
	opts := []Option{
		WithPrefix(c.Prefix),
		WithIDStrategy(c.IDStrategy),
		WithReadOnly(c.ReadOnly),
		WithSeedDir(c.SeedDir),
		WithWatchSeeds(c.WatchSeeds),
		WithEventBuffer(c.EventBuffer),
	}
	if c.BuiltinSeeds != nil {
		opts = append(opts, WithBuiltinSeeds(*c.BuiltinSeeds))
	}
	return opts
}
