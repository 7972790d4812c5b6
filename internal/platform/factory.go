// Package platform is the composition root of depot: it builds one
// independent store per resource kind, seeds it and mounts it on a router.
package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/depot/pkg/adapters/memory"
	"github.com/aretw0/depot/pkg/adapters/seed"
	"github.com/aretw0/depot/pkg/api"
	"github.com/aretw0/depot/pkg/core"
	"github.com/aretw0/depot/pkg/resources"
	"github.com/aretw0/depot/pkg/typed"
)

var (
	// ErrUnknownIDStrategy is returned by New for an unsupported WithIDStrategy value.
	ErrUnknownIDStrategy = errors.New("unknown id strategy")
	// ErrNoSeedDir is returned by WatchSeeds when no seed directory is configured.
	ErrNoSeedDir = errors.New("no seed directory configured")
)

// App is a running set of resource collections and the router serving them.
type App struct {
	opts   *options
	logger *slog.Logger
	router *api.Router
	loader *seed.Loader

	collections []collection
	byName      map[string]collection
	watching    atomic.Bool

	orders       *core.Service[resources.Order]
	measurements *core.Service[resources.Measurement]
	goods        *core.Service[resources.Good]
	buyings      *core.Service[resources.Buying]
	users        *core.Service[resources.User]
}

// New builds an App. Each collection owns its store and lock.
//
//	app, err := platform.New(platform.WithSeedDir("./seeds"))
//	http.ListenAndServe(":5555", app.Handler())
func New(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.idStrategy != IDSequence && o.idStrategy != IDUUID {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIDStrategy, o.idStrategy)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	a := &App{
		opts:   o,
		logger: logger,
		router: api.NewRouter(o.prefix, logger),
		loader: seed.NewLoader(seed.WithLogger(logger)),
		byName: make(map[string]collection),
	}

	a.orders = register(a, resources.OrderKind, resources.SampleOrders())
	a.measurements = register(a, resources.MeasurementKind, resources.SampleMeasurements())
	a.goods = register(a, resources.GoodKind, resources.SampleGoods())
	a.buyings = register(a, resources.BuyingKind, resources.SampleBuyings())
	a.users = register(a, resources.UserKind, resources.SampleUsers())

	a.router.HandleGet("/debug/state", api.StateHandler(a.Stores(), a.logger))

	if o.seedDir != "" {
		set, err := a.loader.Load(o.seedDir)
		if err != nil {
			return nil, err
		}
		if err := a.ApplySeeds(set); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func register[T any](a *App, kind resources.Kind, samples map[string]T) *core.Service[T] {
	ids := memory.Sequence(kind.IDPrefix)
	if a.opts.idStrategy == IDUUID {
		ids = memory.UUIDs()
	}

	opts := []memory.Option{
		memory.WithIDGenerator(ids),
		memory.WithLogger(a.logger),
		memory.WithEventBuffer(a.opts.eventBuffer),
		memory.WithReadOnly(a.opts.readOnly),
	}
	if a.opts.builtinSeeds {
		opts = append(opts, memory.WithSeed(samples))
	}
	store := memory.New[T](kind.Collection, opts...)

	service := core.NewService[T](store)
	api.Mount(a.router, api.Resource[T]{
		Service:  service,
		NotFound: kind.NotFoundMessage,
		Logger:   a.logger,
	})

	b := &binding[T]{kind: kind, store: store}
	a.collections = append(a.collections, b)
	a.byName[kind.Collection] = b
	return service
}

// Handler returns the HTTP handler serving every collection.
func (a *App) Handler() http.Handler {
	return a.router.Handler()
}

// Router exposes the router, e.g. to list its routes.
func (a *App) Router() *api.Router {
	return a.router
}

// Collections returns the collection names in routing order.
func (a *App) Collections() []string {
	names := make([]string, len(a.collections))
	for i, c := range a.collections {
		names[i] = c.name()
	}
	return names
}

// Stores returns the introspectable store of every collection.
func (a *App) Stores() map[string]introspection.Introspectable {
	out := make(map[string]introspection.Introspectable, len(a.collections))
	for _, c := range a.collections {
		out[c.name()] = c
	}
	return out
}

func (a *App) Orders() *core.Service[resources.Order]             { return a.orders }
func (a *App) Measurements() *core.Service[resources.Measurement] { return a.measurements }
func (a *App) Goods() *core.Service[resources.Good]               { return a.goods }
func (a *App) Buyings() *core.Service[resources.Buying]           { return a.buyings }
func (a *App) Users() *core.Service[resources.User]               { return a.users }

// ApplySeeds upserts every known collection of set. Records of unknown
// collections are skipped with a warning.
func (a *App) ApplySeeds(set seed.Set) error {
	for _, name := range set.Collections() {
		c, ok := a.byName[name]
		if !ok {
			a.logger.Warn("seed for unknown collection skipped", "collection", name)
			continue
		}
		if err := c.apply(set[name]); err != nil {
			return err
		}
		a.logger.Debug("seed applied", "collection", name, "records", len(set[name]))
	}
	return nil
}

// Start launches the background work enabled by the options.
func (a *App) Start(ctx context.Context) error {
	if a.opts.watchSeeds && a.opts.seedDir != "" {
		return a.WatchSeeds(ctx)
	}
	return nil
}

// WatchSeeds reapplies seed files as they are written, until ctx is done.
func (a *App) WatchSeeds(ctx context.Context) error {
	if a.opts.seedDir == "" {
		return ErrNoSeedDir
	}

	err := a.loader.Watch(ctx, a.opts.seedDir, func(collection string, records seed.Records) {
		if err := a.ApplySeeds(seed.Set{collection: records}); err != nil {
			a.logger.Error("seed reload failed", "collection", collection, "error", err)
			return
		}
		a.logger.Info("seed reloaded", "collection", collection, "records", len(records))
	}, nil)
	if err != nil {
		return err
	}

	a.watching.Store(true)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		a.watching.Store(false)
		return nil
	})
	return nil
}

// Events merges the change streams of every collection. The channel
// closes once ctx is done.
func (a *App) Events(ctx context.Context) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(chan core.Event)
	var wg sync.WaitGroup
	for _, c := range a.collections {
		ch, err := c.watch(ctx)
		if err != nil {
			return nil, err
		}
		wg.Add(1)
		lifecycle.Go(ctx, func(ctx context.Context) error {
			defer wg.Done()
			for e := range ch {
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	lifecycle.Go(ctx, func(context.Context) error {
		wg.Wait()
		close(out)
		return nil
	})
	return out, nil
}

// collection is the type-erased view of a binding.
type collection interface {
	introspection.Introspectable
	introspection.Component
	name() string
	apply(records seed.Records) error
	watch(ctx context.Context) (<-chan core.Event, error)
}

type binding[T any] struct {
	kind  resources.Kind
	store *memory.Store[T]
}

func (b *binding[T]) name() string {
	return b.kind.Collection
}

func (b *binding[T]) apply(records seed.Records) error {
	items, err := typed.FromFieldSet[T](records)
	if err != nil {
		return fmt.Errorf("seed %s: %w", b.kind.Collection, err)
	}
	for _, id := range slices.Sorted(maps.Keys(items)) {
		if err := core.Validate(items[id]); err != nil {
			return fmt.Errorf("seed %s/%s: %w", b.kind.Collection, id, err)
		}
	}
	b.store.Seed(items)
	return nil
}

func (b *binding[T]) watch(ctx context.Context) (<-chan core.Event, error) {
	return b.store.Watch(ctx)
}

func (b *binding[T]) State() any {
	return b.store.State()
}

func (b *binding[T]) ComponentType() string {
	return b.store.ComponentType()
}
