package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stride-labs/stride/internal/daemon"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show streak, level and XP progress",
	RunE:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Engine.Progress()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Level\t%d (%d / %d XP)\n", p.Level, p.XP, p.LevelCeiling)
	fmt.Fprintf(w, "Streak\t%d day(s), best %d\n", p.CurrentStreak, p.LongestStreak)
	if !p.LastActivityAt.IsZero() {
		fmt.Fprintf(w, "Last activity\t%s (%s)\n",
			p.LastActivityAt.Format("2006-01-02"), p.LastActivityType)
	}
	fmt.Fprintf(w, "Strength days\t%d\n", p.TotalStrengthDays)
	fmt.Fprintf(w, "Cardio days\t%d\n", p.TotalCardioDays)
	fmt.Fprintf(w, "Mixed days\t%d\n", p.ConsecutiveMixedDays)
	fmt.Fprintf(w, "Coins\t%d\n", p.Coins)
	return w.Flush()
}
