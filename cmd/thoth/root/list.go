package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"thoth/internal/engine"
	"thoth/internal/ui"
)

func newListCmd() *cobra.Command {
	var owner string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live tasks",
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

			tasks, err := svc.TaskRepo().ListByOwner(ctx, o.ID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("no tasks — enjoy the quiet"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Tasks for "+o.Name))
			for _, t := range tasks {
				if t.Completed && !all {
					continue
				}
				line := fmt.Sprintf("%4d %s %s  %s",
					t.ID, ui.CategoryIcon(t.Category, t.Completed), t.Title, ui.ImportanceText(t.Importance))
				if t.DueDate != nil {
					line += "  " + ui.Muted.Render("due "+t.DueDate.Format(engine.DateKeyFormat))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if !all {
				done := 0
				for _, t := range tasks {
					if t.Completed {
						done++
					}
				}
				if done > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("(%d completed hidden; --all to show)", done)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}
