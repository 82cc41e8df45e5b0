package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"thoth/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "thoth",
	Short:         "Thoth — daily task ledger with streaks",
	Long:          "Thoth is a local-first CLI task manager that seals each day into a chronicle, tracks completion streaks, and regenerates recurring rituals.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newOwnerCmd(),
		newAddCmd(),
		newRitualCmd(),
		newDoneCmd(),
		newListCmd(),
		newStatusCmd(),
		newSealCmd(),
		newSweepCmd(),
		newRegenCmd(),
		newChronicleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
