package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := svc.ListHabits(ctx)
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No habits yet. Create one with: hq add"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconHabit, "Habits"))
			for _, h := range habits {
				meta := h.Schedule
				if h.Category != nil {
					meta += ", " + *h.Category
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- #%d %s %s\n", h.ID, h.Title, ui.Muted.Render("("+meta+")"))
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", ui.Dim.Render(h.Identity))
			}
			return nil
		},
	}

	return cmd
}
