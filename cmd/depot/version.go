package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/depot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of depot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "depot version %s\n", strings.TrimSpace(depot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
