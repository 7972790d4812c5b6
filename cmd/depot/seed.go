package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/depot"
	"github.com/aretw0/depot/pkg/adapters/seed"
	"github.com/aretw0/depot/pkg/resources"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Work with seed files",
}

var seedCheckCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Parse and validate the seed files in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := seed.NewLoader(seed.WithLogger(slog.Default())).Load(args[0])
		if err != nil {
			return err
		}

		app, err := depot.New(depot.WithBuiltinSeeds(false), depot.WithLogger(slog.Default()))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		var failed int
		for _, name := range set.Collections() {
			records := set[name]
			status := "ok"
			if _, known := resources.Lookup(name); !known {
				status = "unknown collection"
				failed++
			} else if err := app.ApplySeeds(seed.Set{name: records}); err != nil {
				status = err.Error()
				failed++
			}
			fmt.Fprintf(w, "%s\t%d records\t%s\n", name, len(records), status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d seed collections failed", failed, len(set))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedCheckCmd)
}
