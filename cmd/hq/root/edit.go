package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newEditCmd() *cobra.Command {
	var (
		title    string
		identity string
		easyStep string
		cue      string
		bundle   string
		reward   string
		schedule string
		category string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a habit",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var in engine.UpdateHabitInput
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			if cmd.Flags().Changed("identity") {
				in.Identity = &identity
			}
			if cmd.Flags().Changed("step") {
				in.EasyStep = &easyStep
			}
			if cmd.Flags().Changed("cue") {
				in.ObviousCue = &cue
			}
			if cmd.Flags().Changed("bundle") {
				in.AttractiveBundle = &bundle
			}
			if cmd.Flags().Changed("reward") {
				in.SatisfyingReward = &reward
			}
			if cmd.Flags().Changed("schedule") {
				in.Schedule = &schedule
			}
			if cmd.Flags().Changed("category") {
				in.Category = &category
			}

			h, err := svc.UpdateHabit(ctx, parseID(args[0]), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconHabit+" Updated"), h.ID, h.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&identity, "identity", "i", "", "New identity statement")
	cmd.Flags().StringVarP(&easyStep, "step", "e", "", "New two-minute step")
	cmd.Flags().StringVar(&cue, "cue", "", "New cue (empty clears)")
	cmd.Flags().StringVar(&bundle, "bundle", "", "New bundle (empty clears)")
	cmd.Flags().StringVar(&reward, "reward", "", "New reward (empty clears)")
	cmd.Flags().StringVarP(&schedule, "schedule", "s", "", "New schedule (daily|weekdays)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category (empty clears)")

	return cmd
}
