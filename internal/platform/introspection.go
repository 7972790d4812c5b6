package platform

import (
	"github.com/aretw0/introspection"
)

// AppState is the introspection snapshot of an App.
type AppState struct {
	Prefix        string         `json:"prefix"`
	IDStrategy    string         `json:"id_strategy"`
	ReadOnly      bool           `json:"read_only"`
	SeedDir       string         `json:"seed_dir,omitempty"`
	WatchingSeeds bool           `json:"watching_seeds"`
	Collections   map[string]any `json:"collections"`
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	cols := make(map[string]any, len(a.collections))
	for _, c := range a.collections {
		cols[c.name()] = c.State()
	}
	return AppState{
		Prefix:        a.opts.prefix,
		IDStrategy:    a.opts.idStrategy,
		ReadOnly:      a.opts.readOnly,
		SeedDir:       a.opts.seedDir,
		WatchingSeeds: a.watching.Load(),
		Collections:   cols,
	}
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "app"
}

var _ introspection.Introspectable = (*App)(nil)
var _ introspection.Component = (*App)(nil)
