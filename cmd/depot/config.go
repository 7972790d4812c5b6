package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/depot"
	"github.com/aretw0/depot/internal/platform"
	"github.com/aretw0/depot/pkg/logging"
)

var (
	configPath string
	prefix     string
	idStrategy string
	seedDir    string
	readOnly   bool
	noSamples  bool
)

// addAppFlags registers the flags every command that builds an App shares.
func addAppFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to depot.yaml (default: search upwards from the working directory)")
	cmd.Flags().StringVar(&prefix, "prefix", "/api/v2", "Path prefix for collections")
	cmd.Flags().StringVar(&idStrategy, "id-strategy", platform.IDSequence, "Identifier strategy: sequence or uuid")
	cmd.Flags().StringVar(&seedDir, "seed-dir", "", "Directory of JSON/YAML seed files")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Reject every mutation")
	cmd.Flags().BoolVar(&noSamples, "no-samples", false, "Start with empty collections")
}

// resolveConfig merges defaults, the config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*depot.Config, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		found, err := platform.FindConfig(wd)
		if err != nil && !errors.Is(err, platform.ErrConfigNotFound) {
			return nil, err
		}
		path = found
	}

	cfg := depot.DefaultConfig()
	if path != "" {
		loaded, err := depot.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
		slog.Debug("config loaded", "path", path)
	}

	flags := cmd.Flags()
	override := depot.Config{}
	if flags.Changed("addr") {
		override.Addr = addr
	}
	if flags.Changed("prefix") {
		override.Prefix = prefix
	}
	if flags.Changed("id-strategy") {
		override.IDStrategy = idStrategy
	}
	if flags.Changed("seed-dir") {
		override.SeedDir = seedDir
	}
	override.ReadOnly = readOnly
	override.WatchSeeds = watchSeeds
	if noSamples {
		off := false
		override.BuiltinSeeds = &off
	}
	cfg.Merge(&override)

	// An empty prefix flag mounts collections at the root.
	if flags.Changed("prefix") && prefix == "" {
		cfg.Prefix = ""
	}
	return &cfg, nil
}

// applyLogConfig reconfigures the default logger from the config file.
// --verbose and --log-file win over the file's log section.
func applyLogConfig(cfg *depot.Config) error {
	level := slog.LevelDebug
	if !verbose {
		parsed, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	file := logFile
	if file == "" {
		file = cfg.Log.File
	}
	return configureLogger(level, file)
}

func newApp(cfg *depot.Config) (*depot.App, error) {
	opts := append(cfg.Options(), depot.WithLogger(slog.Default()))
	return depot.New(opts...)
}
