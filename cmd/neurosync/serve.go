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

	httptransport "github.com/example/neurosync/internal/http"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.HTTPPort = port
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		}),
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides NEUROSYNC_HTTP_PORT)")
	return cmd
}

func newHandler(a *app) http.Handler {
	client := a.client
	return httptransport.NewRouter(httptransport.RouterConfig{
		Session:      httptransport.NewSessionHandler(client.Session, a.logger),
		Reservations: httptransport.NewReservationHandler(client.Reservations, client.Rooms, a.logger),
		Rooms:        httptransport.NewRoomHandler(client.Rooms, a.logger),
		Theme:        httptransport.NewThemeHandler(client.Theme, a.logger),
		Ready:        client,
		Profiles:     client.Session,
		Logger:       a.logger,
		Middleware:   []func(http.Handler) http.Handler{httptransport.RequestLogger(a.logger)},
	})
}

func serve(ctx context.Context, a *app) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTPPort),
		Handler:           newHandler(a),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	a.logger.Info("neurosync API listening", "addr", server.Addr, "storage", a.cfg.Storage)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("server encountered error", "error", err)
		return err
	}
	return nil
}
