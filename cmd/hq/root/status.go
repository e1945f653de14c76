package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var ledger bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the player profile card",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			today := time.Now()
			st, err := svc.Status(ctx, today)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Hunter Profile"))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankText(string(st.Rank))))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Profile.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d (%d/%d into level, %d%%)",
				st.Profile.XP, st.XPIntoLevel, st.XPNeeded, st.ProgressPercent)))
			fmt.Fprintln(out, ui.LabelValue("Gold", ui.Gold.Render(fmt.Sprintf("%d %s", st.Profile.Gold, ui.IconGold))))
			fmt.Fprintln(out, ui.LabelValue("Weekly rate", fmt.Sprintf("%.0f%%", st.WeeklyRate)))
			fmt.Fprintln(out, ui.LabelValue("Best streak", ui.StreakText(st.BestStreak)))

			if st.EquippedCount > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconArtifact+" Active effects"))
				eff := st.Effects
				if eff.XPBoostPercent > 0 {
					fmt.Fprintf(out, "- XP boost +%d%%\n", eff.XPBoostPercent)
				}
				if eff.GoldBoostPercent > 0 {
					fmt.Fprintf(out, "- Gold boost +%d%%\n", eff.GoldBoostPercent)
				}
				for cat, v := range eff.CategoryBoosts {
					fmt.Fprintf(out, "- %s XP boost +%d%%\n", cat, v)
				}
				if eff.SkipPenaltyReduce > 0 {
					fmt.Fprintf(out, "- Penalty reduction %d%%\n", eff.SkipPenaltyReduce)
				}
				if eff.StreakBuffer > 0 {
					fmt.Fprintf(out, "- Streak buffer %d day(s)\n", eff.StreakBuffer)
				}
			}

			if ledger {
				entries, err := svc.Ledger(ctx, today)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("📜 Today's ledger"))
				if len(entries) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				}
				for _, e := range entries {
					fmt.Fprintf(out, "- %+d XP, %+d gold %s\n", e.XPDelta, e.GoldDelta, ui.Muted.Render("("+e.Reason+")"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ledger, "ledger", false, "Show today's reward ledger")

	return cmd
}
