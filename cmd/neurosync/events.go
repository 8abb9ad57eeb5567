package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/neurosync/internal/config"
	"github.com/example/neurosync/internal/logging"
	"github.com/example/neurosync/internal/queue"
)

func newEventsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect published reservation events",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Print reservation events as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFiles(opts.envFiles...); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.AMQPURL == "" {
				return errors.New("NEUROSYNC_AMQP_URL não definida")
			}
			logger := logging.New(opts.errOut, cfg.LogFormat, cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = queue.NewConsumer(cfg.AMQPURL, cfg.EventsQueue, logger).Run(ctx, func(_ context.Context, ev queue.ReservationEvent) error {
				return opts.emit(out, ev, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s %s %s (%s %s) %s\n", ev.OccurredAt, ev.Action, ev.ReservationID, ev.Date, ev.Time, ev.RoomName)
					return err
				})
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	})
	return cmd
}
