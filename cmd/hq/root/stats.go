package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show derived attribute stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Stats(ctx, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("📊", "Attributes"))
			fmt.Fprintf(out, "- 💪 STR %3d  %s\n", st.Derived.Strength, ui.Muted.Render("consistency, last 30 days"))
			fmt.Fprintf(out, "- 🏃 AGI %3d  %s\n", st.Derived.Agility, ui.Muted.Render("two-minute starts"))
			fmt.Fprintf(out, "- 🛡️ END %3d  %s\n", st.Derived.Endurance, ui.Muted.Render("streak stability"))
			fmt.Fprintf(out, "- 🧠 INT %3d  %s\n", st.Derived.Intelligence, ui.Muted.Render("week-over-week trend"))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Last 30 days", fmt.Sprintf("%d/%d completed", st.CompletedLast30, st.ScheduledLast30)))
			fmt.Fprintln(out, ui.LabelValue("This week", fmt.Sprintf("%.0f%% (last week %.0f%%)", st.ThisWeekRate, st.LastWeekRate)))
			fmt.Fprintln(out, ui.LabelValue("Streaks", fmt.Sprintf("avg %.1f, max %d", st.AvgStreak, st.MaxStreak)))
			return nil
		},
	}

	return cmd
}
