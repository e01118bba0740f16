package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/pkg/pool"
	"github.com/mzigoego/mzigo/pkg/validation"
	"github.com/mzigoego/mzigo/ui"
)

// notificationsCmd groups notification subcommands.
func notificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Manage your notifications",
	}

	cmd.AddCommand(
		notificationsListCmd(a),
		notificationsUnreadCmd(a),
		notificationsReadCmd(a),
	)

	return cmd
}

func notificationsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your notifications",
		Run: func(cmd *cobra.Command, args []string) {
			if _, ok := requireLogin(cmd, a); !ok {
				return
			}

			notifications, err := a.client.Notifications(cmd.Context())
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			if len(notifications) == 0 {
				cmd.Println("No notifications.")
				return
			}

			ui.RenderNotifications(os.Stdout, notifications)
		},
	}
}

func notificationsUnreadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Show the number of unread notifications",
		Run: func(cmd *cobra.Command, args []string) {
			if _, ok := requireLogin(cmd, a); !ok {
				return
			}

			count, err := a.client.UnreadCount(cmd.Context())
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Printf("You have %d unread notification(s).\n", count)
		},
	}
}

// notificationsReadCmd marks notifications as read, either all at once via
// the server-side bulk endpoint or individual IDs concurrently.
func notificationsReadCmd(a *app) *cobra.Command {
	var all bool
	var numThreads int

	cmd := &cobra.Command{
		Use:   "read [id...]",
		Short: "Mark notifications as read",
		Run: func(cmd *cobra.Command, args []string) {
			if _, ok := requireLogin(cmd, a); !ok {
				return
			}

			if all {
				if err := a.client.MarkAllNotificationsRead(cmd.Context()); err != nil {
					printAPIError(cmd, err)
					return
				}
				cmd.Println("All notifications marked as read.")
				return
			}

			if len(args) == 0 {
				cmd.PrintErrln("Error: Pass one or more notification IDs, or --all.")
				return
			}
			if err := validation.ValidateThreadCount(numThreads); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil || validation.ValidateNotificationID(id) != nil {
					cmd.PrintErrf("Error: Invalid notification ID %q.\n", arg)
					return
				}
				ids = append(ids, id)
			}

			errs := pool.Run(cmd.Context(), ids, numThreads, func(ctx context.Context, id int) error {
				if err := a.client.MarkNotificationRead(ctx, id); err != nil {
					log.Error().Err(err).Int("id", id).Msg("Failed to mark notification as read")
					return err
				}
				return nil
			})
			if len(errs) > 0 {
				cmd.PrintErrf("Error: %d of %d notifications could not be marked as read.\n", len(errs), len(ids))
				return
			}
			cmd.Printf("%d notification(s) marked as read.\n", len(ids))
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Mark every notification as read")
	cmd.Flags().IntVarP(&numThreads, "threads", "t", 4, "Number of worker threads to use")

	return cmd
}
