package reward

// Config holds the engine's tunable thresholds. Defaults match the
// shipped product rules; the daemon can override them from config.toml.
type Config struct {
	// Minimum-effort gate for individually logged sets.
	MinSetsPerDay int
	MinSetMinutes float64

	// Cardio floors per activity type.
	RunMinMinutes     float64
	RunMinKm          float64
	WalkMinMinutes    float64
	WalkMinKm         float64
	GeneralMinMinutes float64

	// Streak lengths that trigger extra acknowledgment. Beyond the
	// last entry, every multiple of 7 is a milestone.
	Milestones []int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MinSetsPerDay:     3,
		MinSetMinutes:     10,
		RunMinMinutes:     10,
		RunMinKm:          1,
		WalkMinMinutes:    30,
		WalkMinKm:         3,
		GeneralMinMinutes: 20,
		Milestones:        []int{3, 7, 14, 30, 60, 100},
	}
}

// IsMilestone reports whether a streak length triggers acknowledgment.
func (c Config) IsMilestone(n int) bool {
	last := 0
	for _, m := range c.Milestones {
		if n == m {
			return true
		}
		if m > last {
			last = m
		}
	}
	return last > 0 && n > last && n%7 == 0
}
