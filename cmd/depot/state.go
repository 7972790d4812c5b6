package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/depot/internal/platform"
	"github.com/aretw0/depot/pkg/adapters/memory"
)

var stateDiagram bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the state a server would start with",
	Long: `Build the collections from defaults, config and seed files without serving
them, and print their introspection state as JSON or as a Mermaid diagram.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		app, err := newApp(cfg)
		if err != nil {
			return err
		}

		state, ok := app.State().(platform.AppState)
		if !ok {
			return fmt.Errorf("unexpected state type %T", app.State())
		}

		if stateDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "depot"
			config.SecondaryLabel = "Depot Collections"
			fmt.Fprintln(cmd.OutOrStdout(), introspection.TreeDiagram(buildStateTree(state), config))
			return nil
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	},
}

type stateNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []stateNode
}

// buildStateTree maps the app state onto diagram nodes. Status values
// must match the classes of introspection.DefaultStyles().
func buildStateTree(state platform.AppState) stateNode {
	names := make([]string, 0, len(state.Collections))
	for name := range state.Collections {
		names = append(names, name)
	}
	slices.Sort(names)

	children := make([]stateNode, 0, len(names))
	for _, name := range names {
		node := stateNode{
			Name:     name,
			Status:   "running",
			Metadata: map[string]string{"type": "container"},
		}
		if s, ok := state.Collections[name].(memory.StoreState); ok {
			node.Metadata["size"] = strconv.Itoa(s.Size)
			node.Metadata["ids"] = s.IDStrategy
			if s.ReadOnly {
				node.Status = "suspended"
			}
		}
		children = append(children, node)
	}

	watcher := "suspended"
	if state.WatchingSeeds {
		watcher = "running"
	}
	if state.SeedDir != "" {
		children = append(children, stateNode{
			Name:     "SeedWatcher",
			Status:   watcher,
			Metadata: map[string]string{"type": "goroutine", "dir": state.SeedDir},
		})
	}

	return stateNode{
		Name:   "Depot",
		Status: "running",
		Metadata: map[string]string{
			"type":   "process",
			"prefix": state.Prefix,
		},
		Children: children,
	}
}

func init() {
	rootCmd.AddCommand(stateCmd)
	addAppFlags(stateCmd)
	stateCmd.Flags().BoolVar(&stateDiagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
}
