package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/neurosync/internal/application"
)

var errSignedOut = errors.New("é necessário entrar na conta")

type profileView struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	SensoryProfile string `json:"sensoryProfile"`
	Label          string `json:"sensoryProfileLabel"`
}

func toProfileView(p application.UserProfile) profileView {
	return profileView{
		Name:           p.Name,
		Email:          p.Email,
		SensoryProfile: string(p.SensoryProfile),
		Label:          p.SensoryProfile.Label(),
	}
}

func (o *rootOptions) emitProfile(w io.Writer, p application.UserProfile) error {
	view := toProfileView(p)
	return o.emit(w, view, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s <%s>\nPerfil sensorial: %s\n", view.Name, view.Email, view.Label)
		return err
	})
}

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	var input application.UserProfile
	var profile string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create the local profile; existing reservations are discarded",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			input.SensoryProfile = application.SensoryProfile(strings.ToLower(strings.TrimSpace(profile)))
			if input.SensoryProfile == "" {
				input.SensoryProfile = application.SensoryNone
			}
			if err := application.ValidateProfile(input); err != nil {
				return describeError(err)
			}
			registered, err := a.client.Session.Register(ctx, input)
			if err != nil {
				return describeError(err)
			}
			return opts.emitProfile(cmd.OutOrStdout(), registered)
		}),
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&profile, "profile", "", "sensory profile: visual, audio, both or none")
	return cmd
}

func newLoginCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in with the email of the stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			if email == "" {
				return errors.New("por favor, preencha o email")
			}
			ok, err := a.client.Session.Login(ctx, email)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("email não encontrado; faça o cadastro primeiro")
			}
			profile, _ := a.client.Session.Current()
			return opts.emitProfile(cmd.OutOrStdout(), profile)
		}),
	}
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored profile",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if err := a.client.Session.Logout(ctx); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return err
		}),
	}
}

func newWhoamiCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			profile, ok := a.client.Session.Current()
			if !ok {
				return errSignedOut
			}
			return opts.emitProfile(cmd.OutOrStdout(), profile)
		}),
	}
}

// describeError flattens validation errors into one readable line.
func describeError(err error) error {
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) || !vErr.HasErrors() {
		return err
	}
	fields := make([]string, 0, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		fields = append(fields, field+": "+msg)
	}
	sort.Strings(fields)
	return fmt.Errorf("por favor, preencha todos os campos (%s)", strings.Join(fields, ", "))
}
