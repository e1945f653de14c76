package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a habit and its check-in history",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseID(args[0])
			h, err := svc.GetHabit(ctx, id)
			if err != nil {
				return err
			}
			if err := svc.DeleteHabit(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Warn.Render(ui.IconError+" Removed"), id, h.Title)
			return nil
		},
	}

	return cmd
}
