package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"badges"},
		Short:   "Show earned achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := svc.Achievements(ctx, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements (%d/%d)", rep.Earned, rep.Total)))
			for _, a := range rep.Achievements {
				if !a.Earned && !all {
					continue
				}
				mark := ui.Good.Render("earned")
				if !a.Earned {
					mark = ui.Muted.Render("locked")
				}
				fmt.Fprintf(out, "- %s %s %s %s\n", a.Icon, a.Name, ui.Muted.Render(a.Description), mark)
			}
			if rep.Earned == 0 && !all {
				fmt.Fprintln(out, ui.Muted.Render("Nothing earned yet. Use --all to see what's out there."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include locked achievements")

	return cmd
}
