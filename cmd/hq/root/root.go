package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "hq",
	Short:         "Habitquest — local-first gamified habit tracker",
	Long:          "Habitquest is a local-first CLI/TUI habit tracker with RPG progression: XP, gold, ranks, loot and daily quests.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newListCmd(),
		newDoneCmd(),
		newSkipCmd(),
		newClearCmd(),
		newTodayCmd(),
		newStatusCmd(),
		newStatsCmd(),
		newAchievementsCmd(),
		newQuestsCmd(),
		newInventoryCmd(),
		newDungeonCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
