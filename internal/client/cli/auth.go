package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/plantkeeper/internal/filex"
)

type credentialsFunc func(ctx context.Context, email, password string) (string, error)

func (a *App) registerCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and save its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.authenticate(cmd.Context(), email, "Registered", a.anonymous().Register)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.authenticate(cmd.Context(), email, "Logged in", a.anonymous().Login)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	return cmd
}

func (a *App) authenticate(ctx context.Context, email, verb string, fn credentialsFunc) error {
	if email == "" {
		var err error
		if email, err = getLine(a.in, "Email", a.out); err != nil {
			return err
		}
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(pw)

	token, err := fn(ctx, email, string(pw))
	if err != nil {
		return err
	}

	if err := filex.WriteSecret(a.cfg.TokenFile, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	fmt.Fprintf(a.out, "%s as %s\n", verb, email)
	return nil
}
