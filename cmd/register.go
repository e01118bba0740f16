package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/client"
	"github.com/mzigoego/mzigo/pkg/validation"
)

// registerCmd creates a new customer or rider account.
func registerCmd(a *app) *cobra.Command {
	var data client.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new MzigoEgo account",
		Run: func(cmd *cobra.Command, args []string) {
			if data.Email == "" {
				data.Email = promptForInput("Email: ")
			}
			if data.FirstName == "" {
				data.FirstName = promptForInput("First name: ")
			}
			if data.LastName == "" {
				data.LastName = promptForInput("Last name: ")
			}
			if data.Phone == "" {
				data.Phone = promptForInput("Phone (+254...): ")
			}
			data.Role = strings.ToLower(data.Role)
			if !isValidRole(data.Role) {
				cmd.PrintErrln("Error: Role must be one of:")
				for code, desc := range accountRoles {
					cmd.PrintErrf("  %s - %s\n", code, desc)
				}
				return
			}
			data.Password = promptForPassword("Password: ")
			data.PasswordConfirm = promptForPassword("Confirm password: ")

			if err := validation.ValidateRegisterData(data); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			snap, err := a.service.Register(cmd.Context(), data)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Printf("Account created. Logged in as %s (%s).\n", snap.User.FullName(), snap.User.Role)
		},
	}

	cmd.Flags().StringVarP(&data.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVar(&data.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&data.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&data.Phone, "phone", "", "Phone number in international format")
	cmd.Flags().StringVarP(&data.Role, "role", "r", "customer", "Account role [customer, rider]")

	return cmd
}
