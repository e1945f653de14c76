package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var (
		fast bool
		date string
	)

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a habit done for today",
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

			res, err := svc.CheckIn(ctx, parseID(args[0]), day, engine.StatusDone, fast)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Done"), res.Habit.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d XP, +%d gold)", res.XPAwarded, res.GoldAwarded)))
			fmt.Fprintf(out, "%s\n", ui.LabelValue("Streak", ui.StreakText(res.Streak)))
			if res.Rewards.Breakdown.FastCompletion > 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("  two-minute start bonus +%d XP", res.Rewards.Breakdown.FastCompletion)))
			}
			if res.DailyCleared {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Daily clear! All scheduled habits done."))
			}
			if res.LevelAfter > res.LevelBefore {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			if res.Drop != nil {
				fmt.Fprintf(out, "%s %s %s\n",
					ui.Epic.Render(ui.IconChest+" Loot drop:"), res.Drop.Name,
					ui.RarityText(string(res.Drop.Rarity)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fast, "fast", "f", false, "Completed via the two-minute starter step")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to mark (YYYY-MM-DD, default today)")

	return cmd
}
