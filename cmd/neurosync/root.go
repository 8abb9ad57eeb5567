package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFiles []string
	output   string

	out    io.Writer
	errOut io.Writer
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:          "neurosync",
		Short:        "NeuroSync calm room reservations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "text", "json":
				return nil
			}
			return fmt.Errorf("formato de saída inválido: %q (use text ou json)", opts.output)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files merged into the environment")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")

	cmd.AddCommand(
		newServeCommand(opts),
		newRegisterCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newReservationsCommand(opts),
		newRoomsCommand(opts),
		newThemeCommand(opts),
		newEventsCommand(opts),
	)
	return cmd
}

// withApp bootstraps the client for one command and closes it afterwards.
func withApp(opts *rootOptions, run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := bootstrap(ctx, opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(ctx, a, cmd, args)
	}
}

// emit writes v as indented JSON, or calls text to render the text form.
func (o *rootOptions) emit(w io.Writer, v any, text func(io.Writer) error) error {
	if strings.EqualFold(o.output, "json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(w)
}
