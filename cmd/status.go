package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/auth"
)

// authCmd groups session inspection subcommands.
func authCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect the stored session",
	}

	cmd.AddCommand(statusCmd(a))

	return cmd
}

// statusCmd reports whether a token pair is stored and when the access token
// expires. It decodes the token locally and never calls the API.
func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session status",
		Run: func(cmd *cobra.Command, args []string) {
			pair, err := a.store.Load(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Failed to read the token store.")
				return
			}
			if pair == nil {
				cmd.Println("No session stored. Run 'mzigo login' to sign in.")
				return
			}

			cmd.Println("A session is stored.")
			info, err := auth.DecodeTokenInfo(pair.Access)
			if err != nil {
				cmd.Println("The access token could not be decoded; the next request will tell whether it still works.")
				return
			}
			if info.Subject != "" {
				cmd.Println("Subject:", info.Subject)
			}
			if !info.ExpiresAt.IsZero() {
				cmd.Println("Access token expires:", info.ExpiresAt.Format(time.RFC3339))
			}
			if info.Expired() {
				cmd.Println("The access token is expired; it will be refreshed automatically on the next request.")
			}
		},
	}
}
