package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/depot"
	eventsource "github.com/aretw0/depot/pkg/adapters/lifecycle"
)

const shutdownTimeout = 5 * time.Second

var (
	addr             string
	watchSeeds       bool
	traceEvents      bool
	traceCollections []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the collections over HTTP",
	Long: `Serve every collection as JSON under the configured prefix:

  GET    /api/v2/{collection}        list
  POST   /api/v2/{collection}        create (generated id)
  GET    /api/v2/{collection}/{id}   get
  PUT    /api/v2/{collection}/{id}   create or replace
  DELETE /api/v2/{collection}/{id}   delete`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyLogConfig(cfg); err != nil {
			return err
		}

		app, err := newApp(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := app.Start(ctx); err != nil {
			return err
		}
		if traceEvents || len(traceCollections) > 0 {
			if err := trace(ctx, app); err != nil {
				return err
			}
		}

		return serve(ctx, cfg, app.Handler())
	},
}

func serve(ctx context.Context, cfg *depot.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	lifecycle.Go(ctx, func(context.Context) error {
		errCh <- srv.ListenAndServe()
		return nil
	})
	slog.Info("listening", "addr", cfg.Addr, "prefix", cfg.Prefix, "read_only", cfg.ReadOnly)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// trace logs store mutations until ctx is done, limited to
// --trace-collection when it is set.
func trace(ctx context.Context, app *depot.App) error {
	events, err := app.Events(ctx)
	if err != nil {
		return err
	}

	src := eventsource.NewSource(events, eventsource.WithCollections(traceCollections...))
	if err := src.Start(ctx); err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range src.Events() {
			slog.Info("event", "change", e.String())
		}
		return nil
	})
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addAppFlags(serveCmd)
	serveCmd.Flags().StringVarP(&addr, "addr", "a", ":5555", "Listen address")
	serveCmd.Flags().BoolVar(&watchSeeds, "watch-seeds", false, "Reload seed files when they change")
	serveCmd.Flags().BoolVar(&traceEvents, "trace-events", false, "Log every change to a collection")
	serveCmd.Flags().StringSliceVar(&traceCollections, "trace-collection", nil, "Only trace these collections (implies --trace-events)")
}
