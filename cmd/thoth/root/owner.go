package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"thoth/internal/ui"
)

func newOwnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Manage owners",
	}
	cmd.AddCommand(newOwnerAddCmd(), newOwnerListCmd())
	return cmd
}

func newOwnerAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an owner",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			o, err := svc.OwnerRepo().GetOrCreateByName(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("owner ready")+" "+ui.Muted.Render(o.ID))
			return nil
		},
	}
	return cmd
}

func newOwnerListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			owners, err := svc.OwnerRepo().List(ctx)
			if err != nil {
				return err
			}
			if len(owners) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("no owners yet"))
				return nil
			}
			for _, o := range owners {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", o.Name, ui.Muted.Render(o.ID))
			}
			return nil
		},
	}
	return cmd
}
