package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stride-labs/stride/internal/daemon"
	"github.com/stride-labs/stride/internal/domain"
)

func init() {
	logWorkoutCmd.Flags().Float64Var(&logDuration, "duration", 0, "Session duration in minutes")
	logWorkoutCmd.Flags().IntVar(&logSets, "sets", 0, "Total sets in the session")
	logWorkoutCmd.Flags().IntVar(&logPRs, "prs", 0, "Personal records set")

	logCardioCmd.Flags().StringVar(&logCardioType, "type", "running", "Cardio type (running, cycling, walking, ...)")
	logCardioCmd.Flags().Float64Var(&logDuration, "duration", 0, "Duration in minutes")
	logCardioCmd.Flags().Float64Var(&logDistance, "km", 0, "Distance in kilometers")

	logCmd.AddCommand(logWorkoutCmd)
	logCmd.AddCommand(logCardioCmd)
	rootCmd.AddCommand(logCmd)
}

var (
	logDuration   float64
	logDistance   float64
	logSets       int
	logPRs        int
	logCardioType string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a training activity",
}

var logWorkoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Log a completed strength workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return processLocal(domain.Event{
			ID:           "manual-" + uuid.New().String()[:8],
			Kind:         domain.EventWorkoutCompleted,
			ActivityDate: time.Now(),
			Metadata: map[string]any{
				"duration_minutes": logDuration,
				"sets":             logSets,
				"pr_count":         logPRs,
			},
		})
	},
}

var logCardioCmd = &cobra.Command{
	Use:   "cardio",
	Short: "Log a completed cardio session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return processLocal(domain.Event{
			ID:           "manual-" + uuid.New().String()[:8],
			Kind:         domain.EventCardioCompleted,
			ActivityDate: time.Now(),
			Metadata: map[string]any{
				"cardio_type":      logCardioType,
				"duration_minutes": logDuration,
				"distance_km":      logDistance,
			},
		})
	},
}

// processLocal runs one event through an engine backed by the local
// database and prints the outcome.
func processLocal(ev domain.Event) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	summary := d.Engine.Process(ev)
	if summary == nil {
		fmt.Println("Activity did not meet the minimum-effort threshold — nothing counted.")
		return nil
	}

	printSummary(summary)
	return nil
}

func printSummary(s *domain.RewardSummary) {
	fmt.Printf("+%d XP", s.XP)
	if s.Coins > 0 {
		fmt.Printf("  +%d coins", s.Coins)
	}
	fmt.Println()

	for _, item := range s.XPLineItems {
		fmt.Printf("  %-24s +%d\n", item.Label, item.Amount)
	}
	if s.StreakNew > s.StreakOld {
		fmt.Printf("Streak: %d day(s)", s.StreakNew)
		if s.HitStreakMilestone {
			fmt.Print("  🔥 milestone!")
		}
		fmt.Println()
	}
	if s.LevelUpTo > 0 {
		fmt.Printf("Level up! You reached level %d\n", s.LevelUpTo)
	}
	for _, id := range s.UnlockedAchievements {
		fmt.Printf("Achievement unlocked: %s\n", id)
	}
}
