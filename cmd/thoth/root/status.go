package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"thoth/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show streak and history",
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
			st, err := svc.StatRepo().GetOrCreate(ctx, o.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Status for "+o.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", ui.Gold.Render(fmt.Sprintf("%d", st.CurrentStreak))+" "+ui.IconFlame))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Best", st.MaxStreak))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last 10 days", ui.StreakBar(st.History)))
			if st.LastSealedDate != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last sealed", st.LastSealedDate))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("no day has been sealed yet"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	return cmd
}
