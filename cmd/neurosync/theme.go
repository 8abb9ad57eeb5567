package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/neurosync/internal/application"
)

type themeView struct {
	Theme  string `json:"theme"`
	IsDark bool   `json:"isDark"`
}

func (o *rootOptions) emitTheme(w io.Writer, theme application.Theme) error {
	view := themeView{Theme: string(theme), IsDark: theme == application.ThemeDark}
	return o.emit(w, view, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Tema: %s\n", view.Theme)
		return err
	})
}

func newThemeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the color theme",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			return opts.emitTheme(cmd.OutOrStdout(), a.client.Theme.Current())
		}),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			theme, err := a.client.Theme.Toggle(ctx)
			if err != nil {
				return err
			}
			return opts.emitTheme(cmd.OutOrStdout(), theme)
		}),
	})
	return cmd
}
