package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/ui"
)

// profileCmd groups profile subcommands.
func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}

	cmd.AddCommand(
		profileShowCmd(a),
		profileUpdateCmd(a),
	)

	return cmd
}

func profileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Run: func(cmd *cobra.Command, args []string) {
			snap, ok := requireLogin(cmd, a)
			if !ok {
				return
			}
			ui.RenderProfile(os.Stdout, *snap.User)
		},
	}
}

func profileUpdateCmd(a *app) *cobra.Command {
	var firstName, lastName, phone string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Run: func(cmd *cobra.Command, args []string) {
			if _, ok := requireLogin(cmd, a); !ok {
				return
			}

			patch := map[string]any{}
			if cmd.Flags().Changed("first-name") {
				patch["first_name"] = firstName
			}
			if cmd.Flags().Changed("last-name") {
				patch["last_name"] = lastName
			}
			if cmd.Flags().Changed("phone") {
				patch["phone"] = phone
			}
			if len(patch) == 0 {
				cmd.PrintErrln("Error: Nothing to update. Pass at least one of --first-name, --last-name, --phone.")
				return
			}

			user, err := a.service.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Println("Profile updated.")
			ui.RenderProfile(os.Stdout, *user)
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "New first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "New last name")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone number")

	return cmd
}
