package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/ui"
)

// deliveriesCmd lists the deliveries belonging to the current user.
func deliveriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deliveries",
		Short: "List your deliveries",
		Run: func(cmd *cobra.Command, args []string) {
			if _, ok := requireLogin(cmd, a); !ok {
				return
			}

			deliveries, err := a.client.MyDeliveries(cmd.Context())
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			if len(deliveries) == 0 {
				cmd.Println("You have no deliveries yet.")
				return
			}

			ui.RenderDeliveries(os.Stdout, deliveries)
			log.Info().Int("count", len(deliveries)).Msg("Listed deliveries")
		},
	}
}
