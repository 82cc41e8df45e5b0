package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"thoth/internal/ui"
)

func newChronicleCmd() *cobra.Command {
	var owner string
	var limit int

	cmd := &cobra.Command{
		Use:   "chronicle",
		Short: "Show sealed days, newest first",
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

			entries, err := svc.ChronicleRepo().ListByOwner(ctx, o.ID, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("the chronicle is empty"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Chronicle of "+o.Name))
			for _, e := range entries {
				seal := ui.IconMoon
				if e.SealType == "manual" {
					seal = ui.IconSeal
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s\n",
					seal, ui.Key.Render(e.DateKey),
					ui.Gold.Render(fmt.Sprintf("streak %d", e.Streak)),
					ui.Muted.Render(fmt.Sprintf("%d victories, %d carried", len(e.Victories), len(e.Retained))))
				if len(e.Victories) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "   %s %s\n", ui.Good.Render("won:"), strings.Join(e.Victories, ", "))
				}
				if len(e.Retained) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "   %s %s\n", ui.Warn.Render("carried:"), strings.Join(e.Retained, ", "))
				}
				if e.ReflectionIntention != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "   %s %s\n", ui.Key.Render("intention:"), *e.ReflectionIntention)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 14, "Max entries to show (0 for all)")
	return cmd
}
