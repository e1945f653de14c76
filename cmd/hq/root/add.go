package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var in engine.CreateHabitInput

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			in.Title = args[0]
			h, err := svc.CreateHabit(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconHabit+" Added"), h.ID, h.Title,
				ui.Muted.Render("("+h.Schedule+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Identity, "identity", "i", "", "Identity statement (\"I am someone who...\") (required)")
	cmd.Flags().StringVarP(&in.EasyStep, "step", "e", "", "Two-minute starter step (required)")
	cmd.Flags().StringVar(&in.ObviousCue, "cue", "", "Obvious cue (when/where)")
	cmd.Flags().StringVar(&in.AttractiveBundle, "bundle", "", "Temptation bundle")
	cmd.Flags().StringVar(&in.SatisfyingReward, "reward", "", "Immediate reward")
	cmd.Flags().StringVarP(&in.Schedule, "schedule", "s", "daily", "Schedule (daily|weekdays)")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "Category (fitness, learning, ...)")

	return cmd
}
