package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// logoutCmd ends the current session. The local session is always cleared,
// even when the server cannot be reached.
func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from your MzigoEgo account",
		Run: func(cmd *cobra.Command, args []string) {
			if err := a.service.Logout(cmd.Context()); err != nil {
				log.Debug().Err(err).Msg("Server logout failed")
				cmd.Println("Logged out locally (the server could not be reached).")
				return
			}
			cmd.Println("Logged out.")
		},
	}
}
