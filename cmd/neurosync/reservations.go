package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/neurosync/internal/application"
)

type reservationView struct {
	ID       string `json:"id"`
	RoomName string `json:"roomName"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Local    string `json:"local,omitempty"`
	Ruido    string `json:"ruido,omitempty"`
	Luz      string `json:"luz,omitempty"`
}

func toReservationView(r application.Reservation) reservationView {
	return reservationView{
		ID:       r.ID,
		RoomName: r.RoomName,
		Date:     r.Date,
		Time:     r.Time,
		Status:   string(r.Status),
		Local:    r.Local,
		Ruido:    r.Ruido,
		Luz:      r.Luz,
	}
}

func (o *rootOptions) emitReservations(w io.Writer, reservations []application.Reservation) error {
	views := make([]reservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, toReservationView(r))
	}
	return o.emit(w, views, func(w io.Writer) error {
		if len(views) == 0 {
			_, err := fmt.Fprintln(w, "Nenhuma reserva encontrada.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSALA\tDATA\tHORÁRIO\tSTATUS")
		for _, v := range views {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.RoomName, v.Date, v.Time, v.Status)
		}
		return tw.Flush()
	})
}

// requireProfile fails while nobody is signed in.
func requireProfile(a *app) error {
	if _, ok := a.client.Session.Current(); !ok {
		return errSignedOut
	}
	return nil
}

func newReservationsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"res"},
		Short:   "Manage reservations of the signed-in profile",
	}
	cmd.AddCommand(
		newReservationsListCommand(opts),
		newReservationsCreateCommand(opts),
		newReservationsTransitionCommand(opts, "cancel", "Cancel a reservation", func(ctx context.Context, a *app, id string) error {
			return a.client.Reservations.Cancel(ctx, id)
		}),
		newReservationsTransitionCommand(opts, "complete", "Mark a reservation as completed", func(ctx context.Context, a *app, id string) error {
			return a.client.Reservations.Complete(ctx, id)
		}),
		newReservationsUpdateCommand(opts),
	)
	return cmd
}

func newReservationsListCommand(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reservations, newest first",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if err := requireProfile(a); err != nil {
				return err
			}
			reservations := a.client.Reservations.List()
			if date != "" {
				day, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("data inválida %q: use o formato AAAA-MM-DD", date)
				}
				reservations = application.FilterByDate(reservations, day)
			}
			return opts.emitReservations(cmd.OutOrStdout(), reservations)
		}),
	}
	cmd.Flags().StringVar(&date, "date", "", "only reservations on this day (YYYY-MM-DD)")
	return cmd
}

func newReservationsCreateCommand(opts *rootOptions) *cobra.Command {
	var (
		input  application.ReservationInput
		roomID string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book a room",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if err := requireProfile(a); err != nil {
				return err
			}
			if roomID != "" {
				room, err := a.client.Rooms.Get(ctx, roomID)
				if err != nil {
					return fmt.Errorf("sala %q: %w", roomID, err)
				}
				input.RoomName = room.Name
				input.Local = room.Location
				input.Ruido = room.Noise
				input.Luz = room.Light
			}
			if err := application.ValidateReservationInput(input); err != nil {
				return describeError(err)
			}
			created, err := a.client.Reservations.Create(ctx, input)
			if err != nil {
				return describeError(err)
			}
			return opts.emitReservations(cmd.OutOrStdout(), []application.Reservation{created})
		}),
	}
	flags := cmd.Flags()
	flags.StringVar(&roomID, "room-id", "", "catalog room id; copies name, location and labels")
	flags.StringVar(&input.RoomName, "room", "", "room name")
	flags.StringVar(&input.Date, "date", "", "date text, e.g. \"19 Nov, 2025\"")
	flags.StringVar(&input.Time, "time", "", "time slot, e.g. \"14:00 - 15:00\"")
	flags.StringVar(&input.Local, "local", "", "room location")
	flags.StringVar(&input.Ruido, "ruido", "", "noise label, e.g. CALMO")
	flags.StringVar(&input.Luz, "luz", "", "light label, e.g. BAIXA")
	return cmd
}

func newReservationsTransitionCommand(opts *rootOptions, use, short string, apply func(context.Context, *app, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			if err := requireProfile(a); err != nil {
				return err
			}
			id := args[0]
			if _, ok := a.client.Reservations.Get(id); !ok {
				return fmt.Errorf("reserva %q não encontrada", id)
			}
			if err := apply(ctx, a, id); err != nil {
				if errors.Is(err, application.ErrInvalidTransition) {
					return fmt.Errorf("reserva %q já foi finalizada", id)
				}
				return err
			}
			updated, _ := a.client.Reservations.Get(id)
			return opts.emitReservations(cmd.OutOrStdout(), []application.Reservation{updated})
		}),
	}
}

func newReservationsUpdateCommand(opts *rootOptions) *cobra.Command {
	var room, date, slot, local, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change room, date, time or status of a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			if err := requireProfile(a); err != nil {
				return err
			}
			id := args[0]
			existing, ok := a.client.Reservations.Get(id)
			if !ok {
				return fmt.Errorf("reserva %q não encontrada", id)
			}

			var patch application.ReservationPatch
			flags := cmd.Flags()
			set := func(name string, value string, dst **string) {
				if flags.Changed(name) {
					v := value
					*dst = &v
				}
			}
			set("room", room, &patch.RoomName)
			set("date", date, &patch.Date)
			set("time", slot, &patch.Time)
			set("local", local, &patch.Local)
			if flags.Changed("status") {
				s := application.ReservationStatus(strings.ToLower(strings.TrimSpace(status)))
				patch.Status = &s
			}

			if patch.TouchesSchedule() && !existing.Editable() {
				return errors.New("só é possível alterar data e horário de reservas ativas")
			}
			if err := a.client.Reservations.Update(ctx, id, patch); err != nil {
				return describeError(err)
			}
			updated, _ := a.client.Reservations.Get(id)
			return opts.emitReservations(cmd.OutOrStdout(), []application.Reservation{updated})
		}),
	}
	flags := cmd.Flags()
	flags.StringVar(&room, "room", "", "new room name")
	flags.StringVar(&date, "date", "", "new date text")
	flags.StringVar(&slot, "time", "", "new time slot")
	flags.StringVar(&local, "local", "", "new location")
	flags.StringVar(&status, "status", "", "new status: active, completed or cancelled")
	return cmd
}
