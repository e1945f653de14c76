package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newDungeonCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "dungeon <id>",
		Short: "Log a focus session on a habit (bonus XP)",
		Long: `Dungeon logs a deep-focus session on a habit. It pays the habit's base
and streak XP again on top of the normal daily mark; it does not write a
check-in, so run it alongside "hq done".`,
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

			res, err := svc.DungeonRun(ctx, parseID(args[0]), day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n",
				ui.Epic.Render(ui.IconDungeon+" Dungeon cleared:"), res.Habit.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d XP, +%d gold)", res.XPAwarded, res.GoldAwarded)))
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", res.Profile.Level))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Session day (YYYY-MM-DD, default today)")

	return cmd
}
