package reward

import "github.com/stride-labs/stride/internal/domain"

// ─── Achievement Evaluator ──────────────────────────────────────────────────
// Achievements are data, not code paths: each definition carries a
// tagged rule (kind + threshold) and one interpreter evaluates them
// all, in declaration order, against post-update progress and the
// triggering event. An unlock cannot unlock another in the same pass.

// Evaluator checks the achievement table against progress snapshots.
type Evaluator struct {
	defs []domain.AchievementDef
}

// NewEvaluator creates an evaluator over the given definitions.
func NewEvaluator(defs []domain.AchievementDef) *Evaluator {
	return &Evaluator{defs: defs}
}

// Definitions returns the full achievement table (for display).
func (e *Evaluator) Definitions() []domain.AchievementDef {
	return e.defs
}

// Evaluate returns the definitions that are not yet unlocked and whose
// rule is satisfied by the post-update progress and this activity.
func (e *Evaluator) Evaluate(p domain.RewardProgress, act *ClassifiedActivity) []domain.AchievementDef {
	var newly []domain.AchievementDef
	for _, def := range e.defs {
		if p.HasUnlocked(def.ID) {
			continue
		}
		if ruleSatisfied(def.Rule, p, act) {
			newly = append(newly, def)
		}
	}
	return newly
}

// ruleSatisfied is the single generic rule interpreter.
func ruleSatisfied(r domain.AchievementRule, p domain.RewardProgress, act *ClassifiedActivity) bool {
	switch r.Kind {
	case domain.RuleStreakAtLeast:
		return int64(p.CurrentStreak) >= r.Threshold
	case domain.RuleLongestStreakAtLeast:
		return int64(p.LongestStreak) >= r.Threshold
	case domain.RuleStrengthDaysAtLeast:
		return int64(p.TotalStrengthDays) >= r.Threshold
	case domain.RuleCardioDaysAtLeast:
		return int64(p.TotalCardioDays) >= r.Threshold
	case domain.RuleMixedDaysAtLeast:
		return int64(p.ConsecutiveMixedDays) >= r.Threshold
	case domain.RuleLevelAtLeast:
		return int64(p.Level) >= r.Threshold
	case domain.RuleXPAtLeast:
		return p.XP >= r.Threshold
	case domain.RuleEventOfKind:
		return act != nil && act.Kind == r.Event
	}
	return false
}

// ─── Achievement Catalog ────────────────────────────────────────────────────

// AllAchievements returns the static achievement table, loaded once at
// startup. Order is evaluation order.
func AllAchievements() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Getting Started ────────────────────────────────────────────
		{
			ID: "first_workout", Name: "First Rep", Icon: "🏋️",
			Description: "Complete your first workout.",
			XPReward:    50, CoinReward: 10,
			Rule: domain.AchievementRule{Kind: domain.RuleEventOfKind, Event: domain.EventWorkoutCompleted},
		},
		{
			ID: "first_cardio", Name: "Heart Starter", Icon: "🏃",
			Description: "Finish your first cardio session.",
			XPReward:    50, CoinReward: 10,
			Rule: domain.AchievementRule{Kind: domain.RuleEventOfKind, Event: domain.EventCardioCompleted},
		},
		{
			ID: "first_pr", Name: "Record Breaker", Icon: "📈",
			Description: "Set your first personal record.",
			XPReward:    75, CoinReward: 15,
			Rule: domain.AchievementRule{Kind: domain.RuleEventOfKind, Event: domain.EventPRAchieved},
		},
		{
			ID: "first_new_exercise", Name: "Explorer", Icon: "🧭",
			Description: "Try an exercise for the first time.",
			XPReward:    30, CoinReward: 5,
			Rule: domain.AchievementRule{Kind: domain.RuleEventOfKind, Event: domain.EventExerciseNew},
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Name: "Warming Up", Icon: "✨",
			Description: "Train 3 days in a row.",
			XPReward:    50, CoinReward: 10,
			Rule: domain.AchievementRule{Kind: domain.RuleStreakAtLeast, Threshold: 3},
		},
		{
			ID: "streak_7", Name: "Week Warrior", Icon: "🔥",
			Description: "Train 7 days in a row.",
			XPReward:    200, CoinReward: 50,
			Rule: domain.AchievementRule{Kind: domain.RuleStreakAtLeast, Threshold: 7},
		},
		{
			ID: "streak_30", Name: "Monthly Machine", Icon: "💪",
			Description: "Train 30 days in a row.",
			XPReward:    1000, CoinReward: 200,
			Rule: domain.AchievementRule{Kind: domain.RuleStreakAtLeast, Threshold: 30},
		},
		{
			ID: "streak_100", Name: "Centurion", Icon: "🏛️",
			Description: "Train 100 days in a row.",
			XPReward:    5000, CoinReward: 1000,
			Rule: domain.AchievementRule{Kind: domain.RuleStreakAtLeast, Threshold: 100},
		},
		{
			ID: "streak_longest_14", Name: "Fortnight Force", Icon: "📅",
			Description: "Reach a 14-day best streak.",
			XPReward:    300, CoinReward: 75,
			Rule: domain.AchievementRule{Kind: domain.RuleLongestStreakAtLeast, Threshold: 14},
		},

		// ── Volume ─────────────────────────────────────────────────────
		{
			ID: "strength_days_10", Name: "Iron Apprentice", Icon: "⚒️",
			Description: "Log 10 strength training days.",
			XPReward:    150, CoinReward: 30,
			Rule: domain.AchievementRule{Kind: domain.RuleStrengthDaysAtLeast, Threshold: 10},
		},
		{
			ID: "strength_days_100", Name: "Iron Veteran", Icon: "🛡️",
			Description: "Log 100 strength training days.",
			XPReward:    2000, CoinReward: 400,
			Rule: domain.AchievementRule{Kind: domain.RuleStrengthDaysAtLeast, Threshold: 100},
		},
		{
			ID: "cardio_days_10", Name: "Road Runner", Icon: "🛣️",
			Description: "Log 10 cardio days.",
			XPReward:    150, CoinReward: 30,
			Rule: domain.AchievementRule{Kind: domain.RuleCardioDaysAtLeast, Threshold: 10},
		},
		{
			ID: "cardio_days_100", Name: "Endurance Engine", Icon: "🚂",
			Description: "Log 100 cardio days.",
			XPReward:    2000, CoinReward: 400,
			Rule: domain.AchievementRule{Kind: domain.RuleCardioDaysAtLeast, Threshold: 100},
		},
		{
			ID: "mixed_7", Name: "Hybrid Athlete", Icon: "⚡",
			Description: "Mix strength and cardio on 7 days.",
			XPReward:    400, CoinReward: 80,
			Rule: domain.AchievementRule{Kind: domain.RuleMixedDaysAtLeast, Threshold: 7},
		},

		// ── Progression ────────────────────────────────────────────────
		{
			ID: "level_5", Name: "Rising Star", Icon: "🌅",
			Description: "Reach level 5.",
			XPReward:    100, CoinReward: 25,
			Rule: domain.AchievementRule{Kind: domain.RuleLevelAtLeast, Threshold: 5},
		},
		{
			ID: "level_10", Name: "Dedicated", Icon: "🎖️",
			Description: "Reach level 10.",
			XPReward:    250, CoinReward: 50,
			Rule: domain.AchievementRule{Kind: domain.RuleLevelAtLeast, Threshold: 10},
		},
		{
			ID: "level_25", Name: "Relentless", Icon: "👑",
			Description: "Reach level 25.",
			XPReward:    1000, CoinReward: 250,
			Rule: domain.AchievementRule{Kind: domain.RuleLevelAtLeast, Threshold: 25},
		},
		{
			ID: "xp_10000", Name: "Ten Thousand Club", Icon: "💎",
			Description: "Earn 10,000 lifetime XP.",
			XPReward:    500, CoinReward: 100,
			Rule: domain.AchievementRule{Kind: domain.RuleXPAtLeast, Threshold: 10000},
		},
	}
}
