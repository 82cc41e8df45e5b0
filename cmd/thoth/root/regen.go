package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"thoth/internal/ui"
)

func newRegenCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Regenerate today's ritual tasks from templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			o, err := resolveOwner(ctx, svc, cfg, owner)
			if err != nil {
				return err
			}

			res, err := svc.Regenerate(ctx, o.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s %d ritual task(s) created", ui.IconLoop, res.Created)))
			for _, skipped := range res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("skipped ritual %d: %s", skipped.RitualID, skipped.Reason)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	return cmd
}
