package domain

import "time"

// ─── Persistence Boundary ───────────────────────────────────────────────────
// The reward engine reads from and writes to a generic persisted-state
// interface. Infrastructure implements it; the application layer depends
// on it. Save failures are logged and retried, never escalated.

// ProgressStore is the durability boundary for reward state.
type ProgressStore interface {
	// LoadProgress returns the persisted aggregate, zero-valued on
	// first run (no error for "not yet created").
	LoadProgress() (RewardProgress, error)

	// SaveProgress persists the whole aggregate. The engine calls this
	// fire-and-forget; the in-memory copy stays authoritative.
	SaveProgress(RewardProgress) error

	// UnlockAchievement records an unlock. Returns false if the ID was
	// already present (unlocks are append-only and idempotent).
	UnlockAchievement(id string, at time.Time) (bool, error)

	// UnlockedAchievements returns all recorded unlocks.
	UnlockedAchievements() ([]UnlockedAchievement, error)

	// MarkSourceProcessed appends an external source ID to the
	// idempotency ledger.
	MarkSourceProcessed(id string, at time.Time) error

	// ProcessedSources returns the full idempotency ledger.
	ProcessedSources() (map[string]bool, error)

	// RecordActivityDay journals an accepted activity for per-day
	// aggregate counters and the duplicate-strength policy check.
	RecordActivityDay(dayKey string, activity ActivityType, inApp bool) error

	// ActivityDays returns the journaled day keys per activity type and
	// the set of days with an in-app strength workout.
	ActivityDays() (strength, cardio, inAppWorkout map[string]bool, err error)
}
