// Package domain defines the reward engine's core types.
// The engine converts raw activity events into XP, levels, streaks and
// achievement unlocks, and emits per-event reward summaries.
package domain

import "time"

// ─── Event Types ────────────────────────────────────────────────────────────

// EventKind identifies what kind of activity an event reports.
type EventKind string

const (
	EventWorkoutCompleted EventKind = "workout_completed"
	EventSetLogged        EventKind = "set_logged"
	EventCardioCompleted  EventKind = "cardio_completed"
	EventPRAchieved       EventKind = "pr_achieved"
	EventExerciseNew      EventKind = "exercise_new"
)

// ActivityType classifies what a calendar day's activity consisted of.
type ActivityType string

const (
	ActivityNone     ActivityType = "none"
	ActivityStrength ActivityType = "strength"
	ActivityCardio   ActivityType = "cardio"
	ActivityBoth     ActivityType = "both"
)

// Event is a raw activity event handed to the reward engine.
// Metadata is an untyped bag at the boundary; the classifier projects it
// into typed per-kind payloads before anything else runs.
type Event struct {
	ID           string         `json:"id"`
	Kind         EventKind      `json:"kind"`
	ActivityDate time.Time      `json:"activity_date"`
	Metadata     map[string]any `json:"metadata,omitempty"`

	// SourceID is a stable identifier for externally-sourced events
	// (health-data sync, bulk import). Empty for in-app events.
	SourceID string `json:"source_id,omitempty"`
}

// MetaFloat reads a numeric metadata field. Missing or non-numeric
// fields read as 0 so threshold checks simply fail instead of erroring.
func (e Event) MetaFloat(key string) float64 {
	switch v := e.Metadata[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// MetaInt reads an integer metadata field, defaulting to 0.
func (e Event) MetaInt(key string) int {
	return int(e.MetaFloat(key))
}

// MetaString reads a string metadata field, defaulting to "".
func (e Event) MetaString(key string) string {
	if s, ok := e.Metadata[key].(string); ok {
		return s
	}
	return ""
}

// ─── Persisted Progress ─────────────────────────────────────────────────────

// RewardProgress is the persisted per-installation reward aggregate.
// XP, the day counters and the unlocked set only ever grow;
// LongestStreak >= CurrentStreak holds after every update.
type RewardProgress struct {
	CurrentStreak    int          `json:"current_streak"`
	LongestStreak    int          `json:"longest_streak"`
	LastActivityAt   time.Time    `json:"last_activity_at"` // zero = no activity yet
	LastActivityType ActivityType `json:"last_activity_type"`

	TotalStrengthDays    int `json:"total_strength_days"`
	TotalCardioDays      int `json:"total_cardio_days"`
	ConsecutiveMixedDays int `json:"consecutive_mixed_days"`

	XP           int64 `json:"xp"`
	Level        int   `json:"level"`
	LevelFloor   int64 `json:"level_floor"`
	LevelCeiling int64 `json:"level_ceiling"`
	Coins        int64 `json:"coins"`

	// Unlocked is the append-only set of unlocked achievement IDs.
	Unlocked map[string]bool `json:"unlocked_achievements"`
}

// HasUnlocked reports whether an achievement ID is already unlocked.
func (p RewardProgress) HasUnlocked(id string) bool {
	return p.Unlocked[id]
}

// ─── Reward Summary ─────────────────────────────────────────────────────────

// XPLineItem is one labeled, justified contribution to an XP delta.
type XPLineItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
	Detail string `json:"detail,omitempty"`
}

// XPSnapshot captures the XP/level state around a delta so a progress
// bar can animate from the pre-event to the post-event position, even
// across one or more level boundaries.
type XPSnapshot struct {
	BeforeXP      int64 `json:"before_xp"`
	BeforeLevel   int   `json:"before_level"`
	BeforeFloor   int64 `json:"before_floor"`
	BeforeCeiling int64 `json:"before_ceiling"`
	AfterXP       int64 `json:"after_xp"`
	AfterLevel    int   `json:"after_level"`
	AfterFloor    int64 `json:"after_floor"`
	AfterCeiling  int64 `json:"after_ceiling"`
	XPGained      int64 `json:"xp_gained"`
}

// RewardSummary is the per-event result presented to the user.
// Near-simultaneous summaries are merged by the win-screen coordinator
// before display; a summary carries no identity beyond that.
type RewardSummary struct {
	XP               int64 `json:"xp"`
	Coins            int64 `json:"coins"`
	PRCount          int   `json:"pr_count"`
	NewExerciseCount int   `json:"new_exercise_count"`

	StreakOld          int  `json:"streak_old"`
	StreakNew          int  `json:"streak_new"`
	HitStreakMilestone bool `json:"hit_streak_milestone"`

	// LevelUpTo is the level reached by this delta, 0 when no level-up.
	LevelUpTo int `json:"level_up_to,omitempty"`

	UnlockedAchievements []string     `json:"unlocked_achievements,omitempty"`
	XPLineItems          []XPLineItem `json:"xp_line_items"`
	XPSnapshot           *XPSnapshot  `json:"xp_snapshot,omitempty"`
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementRuleKind tags the condition variant an achievement checks.
// Rules are data, not code: a single interpreter evaluates all of them.
type AchievementRuleKind string

const (
	RuleStreakAtLeast        AchievementRuleKind = "streak_at_least"
	RuleLongestStreakAtLeast AchievementRuleKind = "longest_streak_at_least"
	RuleStrengthDaysAtLeast  AchievementRuleKind = "strength_days_at_least"
	RuleCardioDaysAtLeast    AchievementRuleKind = "cardio_days_at_least"
	RuleMixedDaysAtLeast     AchievementRuleKind = "mixed_days_at_least"
	RuleLevelAtLeast         AchievementRuleKind = "level_at_least"
	RuleXPAtLeast            AchievementRuleKind = "xp_at_least"
	RuleEventOfKind          AchievementRuleKind = "event_of_kind"
)

// AchievementRule is a declarative condition over post-update progress
// and the triggering event.
type AchievementRule struct {
	Kind      AchievementRuleKind `json:"kind"`
	Threshold int64               `json:"threshold,omitempty"`
	Event     EventKind           `json:"event,omitempty"` // for RuleEventOfKind
}

// AchievementDef defines a single achievement.
type AchievementDef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	XPReward    int64           `json:"xp_reward"`
	CoinReward  int64           `json:"coin_reward"`
	Rule        AchievementRule `json:"rule"`
}

// UnlockedAchievement records when an achievement was earned.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
