package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"thoth/internal/engine"
	"thoth/internal/ui"
)

func newSealCmd() *cobra.Command {
	var owner string
	var victories string
	var shadow string
	var intention string

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Close out today: archive the day and update your streak",
		Long:  "Seal archives completed tasks as victories, carries rituals and overdue tasks into the chronicle, updates the streak, and clears the slate. Within the grace window after midnight the seal applies to yesterday.",
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

			res, err := svc.Reconcile(ctx, o.ID, engine.SealManual, &engine.Reflection{
				Victories:  victories,
				ShadowWork: shadow,
				Intention:  intention,
			})
			if err != nil {
				var sealed engine.AlreadySealedError
				if errors.As(err, &sealed) {
					return fmt.Errorf("%s — try again tomorrow", sealed.Error())
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSeal, "Day sealed — "+res.DateKey))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Victories", len(res.Victories)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Carried over", len(res.Retained)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", ui.Gold.Render(fmt.Sprintf("%d", res.CurrentStreak))+" "+ui.IconFlame))
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	cmd.Flags().StringVar(&victories, "victories", "", "What went well today")
	cmd.Flags().StringVar(&shadow, "shadow", "", "What you avoided or struggled with")
	cmd.Flags().StringVar(&intention, "intention", "", "Intention for tomorrow")

	return cmd
}
