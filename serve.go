package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abefas/tasktracker/config"
	"github.com/abefas/tasktracker/handlers"
	"github.com/abefas/tasktracker/middleware"
	"github.com/abefas/tasktracker/seed"
	"github.com/abefas/tasktracker/store"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	configPath string
	addr       string
	seed       bool
	seedFile   string
}

func serveCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the task API server",
		Long: `Start the task API server.

Examples:
  tasktracker serve
  tasktracker serve --addr :8080 --seed
  tasktracker serve --config tasktracker.yaml --seed-file fixtures.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "create demo tasks at startup")
	cmd.Flags().StringVar(&opts.seedFile, "seed-file", "", "YAML fixture file (implies --seed)")

	return cmd
}

// apply lets explicitly set flags win over file and environment settings.
func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("addr") && o.addr != "" {
		cfg.Server.Addr = o.addr
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed.Enabled = o.seed
	}
	if o.seedFile != "" {
		cfg.Seed.Enabled = true
		cfg.Seed.File = o.seedFile
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	st := store.New()

	if cfg.Seed.Enabled {
		fixtures := seed.Defaults()
		if cfg.Seed.File != "" {
			var err error
			if fixtures, err = seed.LoadFile(cfg.Seed.File); err != nil {
				return err
			}
		}
		if _, err := seed.Apply(st, fixtures); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(cfg, st),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("tasktracker %s listening on %s", Version, cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}

// newRouter builds the API router and wraps it in the middleware chain.
func newRouter(cfg *config.Config, st *store.Store) http.Handler {
	router := mux.NewRouter()

	h := handlers.NewHandlers(st)
	h.MaxBodyBytes = cfg.Server.MaxBodyBytes
	h.Routes(router)

	logger := log.New(os.Stderr, "", log.LstdFlags)

	var handler http.Handler = router
	handler = middleware.Recover(logger)(handler)
	if cfg.Log.Requests {
		handler = middleware.Logger(logger)(handler)
	}
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	return handler
}
