package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newSkipCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "skip <id>",
		Short: "Skip a habit for today (breaks the streak, no reward)",
		Args:  idArg,
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

			res, err := svc.CheckIn(ctx, parseID(args[0]), day, engine.StatusSkipped, false)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconSkip+" Skipped"), res.Habit.Title)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Never miss twice: tomorrow counts double in your head."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to skip (YYYY-MM-DD, default today)")

	return cmd
}
