package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/suzuryg/facial-expression-switcher/internal/presentation/tui"
	httpAdapter "github.com/suzuryg/facial-expression-switcher/pkg/adapters/http"
	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/memory"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes menus, generation passes, outputs, Mermaid graphs and metrics as a JSON API over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.cfg.HTTP.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		// Concurrent requests must not interleave passes since cleanup sees every output.
		if a.locker == nil {
			a.locker = memory.NewLocker()
		}
		streams := httpAdapter.NewStreamManager(a.logger)
		gen := a.generator(streams.Hooks())
		server := httpAdapter.NewServer(a.menus, gen, a.store, a.installation,
			httpAdapter.WithLogger(a.logger),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetrics(a.metrics.Handler()),
			httpAdapter.WithVersion(Version),
		)

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(os.Stderr)
			a.logger.Info("Starting fxgen server", "addr", srv.Addr, "menus", a.cfg.Menus.Dir)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			a.logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			a.logger.Info("fxgen server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from http.addr)")
}
