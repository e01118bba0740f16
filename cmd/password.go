package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/client"
	"github.com/mzigoego/mzigo/pkg/validation"
)

// passwordCmd changes the account password.
func passwordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Change your account password",
		Run: func(cmd *cobra.Command, args []string) {
			if _, ok := requireLogin(cmd, a); !ok {
				return
			}

			data := client.ChangePasswordData{
				CurrentPassword: promptForPassword("Current password: "),
				NewPassword:     promptForPassword("New password: "),
				ConfirmPassword: promptForPassword("Confirm new password: "),
			}
			if err := validation.ValidateChangePasswordData(data); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			if err := a.service.ChangePassword(cmd.Context(), data); err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Println("Password changed.")
		},
	}
}
