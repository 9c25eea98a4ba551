package reward

import (
	"time"

	"github.com/stride-labs/stride/internal/domain"
)

// ─── Streak State Machine ───────────────────────────────────────────────────
// Pure function over calendar days. Time of day is irrelevant; streak
// correctness depends on forward-only day progression, so backdated
// activity never rewrites the streak.

// Transition is the result of advancing the streak by one activity.
type Transition struct {
	OldStreak     int
	NewStreak     int
	HitMilestone  bool
	ActivityAfter domain.ActivityType

	// SameDay: the streak length did not move, only the type mix.
	SameDay bool
	// Backfill: activity predates the last counted day; streak fields
	// are untouched and only day counters may change.
	Backfill bool
	// NewMixedDay: this update turned the day's mix into "both".
	NewMixedDay bool
}

// AdvanceStreak computes the streak transition for a qualifying
// activity on the given calendar day. It does not mutate progress;
// the engine applies the transition.
func AdvanceStreak(p domain.RewardProgress, day time.Time, activity domain.ActivityType, cfg Config) Transition {
	tr := Transition{
		OldStreak:     p.CurrentStreak,
		NewStreak:     p.CurrentStreak,
		ActivityAfter: p.LastActivityType,
	}

	if p.LastActivityAt.IsZero() {
		// Very first activity ever.
		tr.NewStreak = 1
		tr.ActivityAfter = activity
		tr.HitMilestone = cfg.IsMilestone(1)
		return tr
	}

	gap := domain.DaysBetween(p.LastActivityAt, day)
	switch {
	case gap < 0:
		tr.Backfill = true
		return tr

	case gap == 0:
		tr.SameDay = true
		if activity != p.LastActivityType && p.LastActivityType != domain.ActivityBoth {
			tr.ActivityAfter = domain.ActivityBoth
			tr.NewMixedDay = true
		}
		return tr

	case gap == 1:
		tr.NewStreak = p.CurrentStreak + 1

	default:
		// Gap of 2+ days: today's activity starts a new streak.
		// Never 0 — a day with qualifying activity is a streak day.
		tr.NewStreak = 1
	}

	tr.ActivityAfter = activity
	// Milestones fire only when the streak actually grew.
	tr.HitMilestone = tr.NewStreak > tr.OldStreak && cfg.IsMilestone(tr.NewStreak)
	return tr
}
