package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"thoth/internal/engine"
	"thoth/internal/ui"
)

func newRitualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ritual",
		Short: "Manage recurring ritual templates",
	}
	cmd.AddCommand(newRitualAddCmd(), newRitualListCmd(), newRitualRemoveCmd())
	return cmd
}

func newRitualAddCmd() *cobra.Command {
	var owner string
	var importance string
	var minutes int
	var details string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a ritual template (spawns a task each day)",
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

			var det *string
			if details != "" {
				det = &details
			}

			id, err := svc.CreateRitual(ctx, engine.CreateRitualInput{
				OwnerID:          o.ID,
				Title:            args[0],
				Importance:       engine.ParseImportance(importance),
				EstimatedMinutes: minutes,
				Details:          det,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLoop+" ritual added")+" "+ui.Muted.Render(fmt.Sprintf("(ritual %d)", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	cmd.Flags().StringVarP(&importance, "importance", "i", "medium", "Importance (low|medium|high)")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Estimated minutes")
	cmd.Flags().StringVarP(&details, "details", "d", "", "Free-text details")

	return cmd
}

func newRitualListCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ritual templates",
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

			rituals, err := svc.RitualRepo().ListByOwner(ctx, o.ID)
			if err != nil {
				return err
			}
			if len(rituals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("no rituals yet"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconLoop, "Rituals"))
			for _, r := range rituals {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %s %s\n",
					r.ID, r.Title, ui.ImportanceText(r.Importance),
					ui.Muted.Render(fmt.Sprintf("(~%dm)", r.EstimatedMinutes)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name (defaults to config)")
	return cmd
}

func newRitualRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a ritual template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := svc.RitualRepo().Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("ritual removed"))
			return nil
		},
	}
	return cmd
}
