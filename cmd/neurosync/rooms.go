package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/neurosync/internal/application"
)

type roomView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Ruido    string `json:"ruido"`
	Luz      string `json:"luz"`
	Local    string `json:"local"`
	Reserved bool   `json:"reserved"`
}

type roomListView struct {
	Rooms     []roomView `json:"rooms"`
	Available int        `json:"available"`
}

func newRoomsCommand(opts *rootOptions) *cobra.Command {
	var filter application.RoomFilter

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List calm rooms and how many are available",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			rooms := a.client.Rooms.List(ctx, filter)
			view := roomListView{
				Rooms:     make([]roomView, 0, len(rooms)),
				Available: a.client.Rooms.AvailableCount(ctx, filter),
			}
			for _, r := range rooms {
				view.Rooms = append(view.Rooms, roomView{
					ID: r.ID, Name: r.Name, Ruido: r.Noise, Luz: r.Light, Local: r.Location, Reserved: r.Reserved,
				})
			}
			return opts.emit(cmd.OutOrStdout(), view, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tSALA\tRUÍDO\tLUZ\tLOCAL\tSITUAÇÃO")
				for _, r := range view.Rooms {
					state := "Disponível"
					if r.Reserved {
						state = "Reservada"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Ruido, r.Luz, r.Local, state)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "%d salas disponíveis\n", view.Available)
				return err
			})
		}),
	}
	cmd.Flags().StringVar(&filter.Noise, "noise", "", "noise label: CALMO, MODERADO or MÁXIMO")
	cmd.Flags().StringVar(&filter.Light, "light", "", "light label: BAIXA, MÉDIA or ALTA")
	return cmd
}
