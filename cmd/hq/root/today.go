package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's habit board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			today := time.Now()
			entries, err := svc.TodayBoard(ctx, today)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconHabit, "Today "+engine.DateKey(today)))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing scheduled today."))
				return nil
			}

			for _, e := range entries {
				mark := "[ ]"
				if e.Today != nil {
					switch engine.CheckinStatus(e.Today.Status) {
					case engine.StatusDone:
						mark = "[x]"
					case engine.StatusSkipped:
						mark = "[s]"
					}
				}
				line := fmt.Sprintf("%s #%d %s  %s", mark, e.Habit.ID, e.Habit.Title, ui.StreakText(e.Streak))
				fmt.Fprintln(out, line)
				fmt.Fprintf(out, "    %s\n", ui.Dim.Render(e.Habit.EasyStep))
				if e.Warning {
					fmt.Fprintf(out, "    %s\n", ui.Warn.Render(ui.IconWarn+" missed yesterday — never miss twice"))
				}
			}
			return nil
		},
	}

	return cmd
}
