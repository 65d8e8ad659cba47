package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/wfdscore/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wfdscore",
	Short: "Winter Field Day log scorer",
	Long: `wfdscore parses a Winter Field Day contest log and computes its claimed score.
It can score a single file or run as a service that keeps a live log scored.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
