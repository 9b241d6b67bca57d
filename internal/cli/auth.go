package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mealbadge/mealbadge-go/internal/gateway"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Gateway.Login(cmd.Context(), &gateway.LoginRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := app.Session.SetToken(resp.Token); err != nil {
				return fmt.Errorf("failed to persist session token: %w", err)
			}
			cmd.Println("Logged in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Clear()
			cmd.Println("Logged out.")
			return nil
		},
	}
}
