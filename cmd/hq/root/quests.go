package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/storage"
	"habitquest/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show today's daily quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.DailyQuests(ctx, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printEvaluation(out, res.Evaluation)
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Daily Quests"))
			printQuestList(out, res.Quests)
			return nil
		},
	}

	cmd.AddCommand(newQuestDoneCmd(), newQuestRefreshCmd())

	return cmd
}

func newQuestDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <quest-id>",
		Short: "Complete a daily quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteQuest(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Quest complete:"), res.Quest.Quest.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d XP, +%d gold)", res.XPAwarded, res.GoldAwarded)))
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", res.Profile.Level))
			}
			return nil
		},
	}

	return cmd
}

func newQuestRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Reroll today's quest batch (once per day)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.RefreshQuests(ctx, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.AlreadyRefreshed {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Already refreshed today. Same batch:"))
			} else {
				fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" Quests rerolled:"))
			}
			printQuestList(out, res.Quests)
			return nil
		},
	}

	return cmd
}

func printQuestList(out io.Writer, quests []storage.DailyQuest) {
	if len(quests) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("(no quests)"))
		return
	}
	for _, q := range quests {
		mark := "[ ]"
		if q.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(out, "%s %s %s\n", mark, q.Quest.Title,
			ui.Muted.Render(fmt.Sprintf("(+%d XP, +%d gold) [%s]", q.Quest.XPReward, q.Quest.GoldReward, q.ID[:8])))
	}
}

func printEvaluation(out io.Writer, ev *engine.YesterdayEvaluation) {
	if ev == nil || ev.MissedQuests == 0 {
		return
	}
	fmt.Fprintln(out, ui.Bad.Render(ui.IconError+" "+ev.Message))
	fmt.Fprintf(out, "%s\n\n", ui.Muted.Render(fmt.Sprintf(
		"Missed %d of %d yesterday: -%d XP, -%d gold",
		ev.MissedQuests, ev.TotalQuests, ev.XPPenalty, ev.GoldPenalty)))
}
