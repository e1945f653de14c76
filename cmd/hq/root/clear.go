package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newClearCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "clear <id>",
		Short: "Clear a habit's check-in for a day (undo a mark)",
		Long: `Clear removes the done/skipped mark for a habit on a day.

Rewards already granted are not clawed back; the ledger is append-only.
Use this to fix an accidental mark.`,
		Args: idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := resolveDate(date)
			if err != nil {
				return err
			}

			id := parseID(args[0])
			if err := svc.ClearCheckin(ctx, id, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("↩ Cleared"), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to clear (YYYY-MM-DD, default today)")

	return cmd
}
