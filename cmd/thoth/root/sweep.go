package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"thoth/internal/ui"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the nightly close-out for all owners",
		Long:  "Sweep reconciles every owner's day (a no-op for days already sealed manually) and regenerates ritual tasks. Intended to be run once per night from a scheduler.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Sweep(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMoon, "Sweep complete"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Owners", res.Owners))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Sealed", res.Sealed))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Already sealed", res.AlreadySealed))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Rituals spawned", res.TasksCreated))
			if res.Failures > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Bad.Render(fmt.Sprintf("failures: %d (see logs)", res.Failures)))
			}
			return nil
		},
	}
	return cmd
}
