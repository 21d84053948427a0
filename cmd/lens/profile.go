package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/context-lens/internal/cli"
	"github.com/Veraticus/context-lens/internal/model"
)

func loginCmd() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Save your name and preferred currency",
		Long: `Save a local profile. Nothing leaves this machine; the currency is used
to localize cost estimates. Without a username you are prompted for both fields.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var username string
			if len(args) == 1 {
				username = args[0]
			} else {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				username, currency, err = prompter.PromptLogin(ctx)
				if err != nil {
					return err
				}
			}

			if err := s.ctrl.Login(ctx, username, currency); err != nil {
				return err
			}

			user := s.ctrl.Snapshot().User
			return printLine(cmd.OutOrStdout(),
				cli.FormatSuccess(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.Currency)))
		},
	}

	cmd.Flags().StringVarP(&currency, "currency", "c", model.DefaultCurrency, "preferred currency code")

	return cmd
}

func logoutCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Delete your profile and history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			state := s.ctrl.Snapshot()
			if !state.LoggedIn() {
				return printLine(out, cli.FormatInfo("Not logged in."))
			}

			if !yes {
				prompter := cli.NewPrompter(cmd.InOrStdin(), out)
				question := fmt.Sprintf("Log out %s and delete %d saved analyses?", state.User.Username, len(state.History))
				confirmed, err := prompter.Confirm(ctx, question)
				if err != nil {
					return err
				}
				if !confirmed {
					return printLine(out, cli.FormatInfo("Logout canceled."))
				}
			}

			if err := s.ctrl.Logout(ctx); err != nil {
				return err
			}
			return printLine(out, cli.FormatSuccess("Logged out. Profile and history deleted."))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			return printLine(cmd.OutOrStdout(), cli.RenderProfile(s.ctrl.Snapshot().User))
		},
	}
}

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies offered at login",
		Long: `List the currencies offered at login. Any other three-letter code is accepted
too; it is passed to the model unchanged.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			current := ""
			if user := s.ctrl.Snapshot().User; user != nil {
				current = strings.ToUpper(user.Currency)
			}
			return printLine(cmd.OutOrStdout(), cli.RenderCurrencies(current))
		},
	}
}
