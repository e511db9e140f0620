package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/incorporate/pkg/adapters/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the questionnaire as a JSON API. Sessions and leads use the configured drivers.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a, err := newApp(ctx, cmd)
		if err != nil {
			fatal(bootLogger(), "failed to initialize", err)
		}
		defer a.Close(ctx)

		if port, _ := cmd.Flags().GetString("port"); port != "" {
			a.cfg.Listen.Port = port
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(a.logger),
			httpAdapter.WithLeadService(a.leads),
		}
		if a.metricsHandler != nil {
			opts = append(opts, httpAdapter.WithMetricsHandler(a.metricsHandler))
		}
		for name, check := range a.checks {
			opts = append(opts, httpAdapter.WithHealthCheck(name, check))
		}

		srv := &http.Server{
			Addr:              a.cfg.Addr(),
			Handler:           httpAdapter.NewHandler(a.engine, a.sessions, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("starting HTTP server",
				"addr", srv.Addr,
				"store", a.cfg.Store.Driver,
				"leads", a.cfg.Leads.Driver,
				"metrics", a.cfg.Metrics.Enabled,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				fatal(a.logger, "server error", err)
			}

		case sig := <-shutdown:
			a.logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					a.logger.Error("error killing server", "err", err)
				}
			}
			a.logger.Info("server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides listen.port)")
}
