package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/depot/pkg/logging"
)

var (
	verbose bool
	logFile string

	closeLog = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "depot",
	Short: "An in-memory record store served over REST",
	Long: `Depot keeps orders, measurements, goods, buyings and users in memory
and serves them as JSON collections under /api/v2.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return configureLogger(level, logFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = closeLog()
	},
}

// configureLogger installs the default logger: text to stderr at level and,
// when file is set, a debug-level copy appended to file.
func configureLogger(level slog.Level, file string) error {
	if err := closeLog(); err != nil {
		return err
	}
	closeLog = func() error { return nil }

	var sink io.Writer
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		sink = f
		closeLog = f.Close
	}

	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, level, sink)))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write a debug-level log to this file")
}
