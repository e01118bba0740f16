package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/client"
	"github.com/mzigoego/mzigo/pkg/validation"
)

// loginCmd signs the user in with email and password.
func loginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to your MzigoEgo account",
		Run: func(cmd *cobra.Command, args []string) {
			if email == "" {
				email = promptForInput("Email: ")
			}
			password := promptForPassword("Password: ")

			creds := client.LoginCredentials{Email: email, Password: password}
			if err := validation.ValidateCredentials(creds); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			snap, err := a.service.Login(cmd.Context(), creds)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Printf("Logged in as %s (%s).\n", snap.User.FullName(), snap.User.Role)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address to login with")

	return cmd
}
