package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"thoth/internal/engine"
	"thoth/internal/ui"
)

func newAddCmd() *cobra.Command {
	var owner string
	var importance string
	var minutes int
	var details string
	var due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
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

			var dueDate *time.Time
			if due != "" {
				d, err := time.ParseInLocation(engine.DateKeyFormat, due, time.Local)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				end := engine.EndOfDay(d)
				dueDate = &end
			}

			var det *string
			if details != "" {
				det = &details
			}

			id, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				OwnerID:          o.ID,
				Title:            args[0],
				Importance:       engine.ParseImportance(importance),
				EstimatedMinutes: minutes,
				Details:          det,
				DueDate:          dueDate,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconPlus+" added")+" "+ui.Muted.Render(fmt.Sprintf("(task %d)", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	cmd.Flags().StringVarP(&importance, "importance", "i", "medium", "Importance (low|medium|high)")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Estimated minutes")
	cmd.Flags().StringVarP(&details, "details", "d", "", "Free-text details")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")

	return cmd
}
