package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lanchonete/app/account"
	"github.com/shashiranjanraj/lanchonete/pkg/app"
)

// lanchonete account ...
func newAccountCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the local customer account",
	}

	var reg account.Registration
	register := &cobra.Command{
		Use:   "register",
		Short: "Create or replace the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.PasswordConfirmation == "" {
				reg.PasswordConfirmation = reg.Password
			}
			return withApp(cmd, open, func(a *app.Application) error {
				acc, err := a.Accounts.Register(cmd.Context(), reg)
				var verr *account.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("invalid registration: %s", verr.Fields.Error())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s>\n", acc.Name, acc.Email)
				return nil
			})
		},
	}
	register.Flags().StringVar(&reg.Name, "name", "", "full name")
	register.Flags().StringVar(&reg.Email, "email", "", "email address")
	register.Flags().StringVar(&reg.Password, "password", "", "password (min 6 characters)")
	register.Flags().StringVar(&reg.PasswordConfirmation, "password-confirmation", "", "repeat the password; defaults to --password")
	register.Flags().StringVar(&reg.PostalCode, "cep", "", "postal code, 00000-000")

	var email, password string
	login := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print an API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				acc, err := a.Accounts.Login(cmd.Context(), email, password)
				if err != nil {
					return err
				}
				token, err := a.Issuer.Issue(acc.Name, acc.Email)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n%s\n", acc.Name, token)
				return nil
			})
		},
	}
	login.Flags().StringVar(&email, "email", "", "email address")
	login.Flags().StringVar(&password, "password", "", "password")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the stored account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				acc, err := a.Accounts.Current(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Name:  %s\nEmail: %s\n", acc.Name, acc.Email)
				if acc.PostalCode != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "CEP:   %s\n", acc.PostalCode)
				}
				return nil
			})
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				if err := a.Accounts.Logout(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
				return nil
			})
		},
	}

	cmd.AddCommand(register, login, show, logout)
	return cmd
}
