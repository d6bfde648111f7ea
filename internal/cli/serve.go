package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebox/internal/flash"
	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr            string
	Seed            string
	ShutdownTimeout time.Duration

	// Clock allows overriding the date stamped on new recipes (for testing).
	// If nil, defaults to recipe.SystemClock.
	Clock recipe.Clock
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the Recipe Box web server.

The catalog is loaded from the embedded seed file (or --seed) into an
in-memory store. Recipes added through the web form are kept until the
process exits.

Example:
  recipebox serve
  recipebox serve --addr :8080 --seed ./recipes.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", web.DefaultAddr, "address to listen on")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "seed catalog YAML file (default: embedded catalog)")
	cmd.Flags().DurationVar(&opts.ShutdownTimeout, "shutdown-timeout", web.DefaultShutdownTimeout, "graceful shutdown timeout")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	slog.SetDefault(log)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	recipes, err := loadCatalog(opts.Seed)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load seed catalog", err)
	}
	log.Debug("seed catalog loaded", "recipes", len(recipes), "path", opts.Seed)

	st, err := openSeededStore(ctx, recipes)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing store", "error", closeErr)
		}
	}()

	clock := opts.Clock
	if clock == nil {
		clock = recipe.SystemClock{}
	}

	srv, err := web.New(st, flash.NewStore(), clock, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build server", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	cfg := web.Config{Addr: opts.Addr, ShutdownTimeout: opts.ShutdownTimeout}
	err = srv.ListenAndServe(ctx, cfg, func(addr string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Recipe Box running at http://%s\n", addr)
		fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "server error", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
