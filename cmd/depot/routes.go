package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		app, err := newApp(cfg)
		if err != nil {
			return err
		}

		routes, err := app.Router().Routes()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, r := range routes {
			fmt.Fprintf(w, "%s\t%s\n", strings.Join(r.Methods, ","), r.Path)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	addAppFlags(routesCmd)
}
