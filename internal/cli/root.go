// Package cli implements the Stride command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stride",
	Short: "Stride — rewards for consistent training",
	Long: `Stride turns completed workouts, logged sets and cardio sessions
into experience points, levels, streaks and achievement unlocks.

Run 'stride serve' to start the reward daemon, or log activity
directly with 'stride log'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
