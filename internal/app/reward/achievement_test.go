package reward_test

import (
	"testing"

	"github.com/stride-labs/stride/internal/app/reward"
	"github.com/stride-labs/stride/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Achievement Evaluator Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestAchievements_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range reward.AllAchievements() {
		if seen[def.ID] {
			t.Errorf("duplicate achievement id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Rule.Kind == "" {
			t.Errorf("achievement %q has no rule", def.ID)
		}
	}
}

func TestEvaluate_StreakThreshold(t *testing.T) {
	ev := reward.NewEvaluator(reward.AllAchievements())

	p := domain.RewardProgress{CurrentStreak: 2, Unlocked: map[string]bool{}}
	if got := ev.Evaluate(p, nil); len(got) != 0 {
		t.Errorf("streak 2 should unlock nothing, got %v", got)
	}

	p.CurrentStreak = 7
	p.LongestStreak = 7
	got := ev.Evaluate(p, nil)
	ids := make(map[string]bool)
	for _, def := range got {
		ids[def.ID] = true
	}
	// Crossing 7 satisfies both the 3-day and 7-day streak rules at once.
	if !ids["streak_3"] || !ids["streak_7"] {
		t.Errorf("expected streak_3 and streak_7, got %v", ids)
	}
	if ids["streak_30"] {
		t.Error("streak_30 must not unlock at 7")
	}
}

func TestEvaluate_SkipsAlreadyUnlocked(t *testing.T) {
	ev := reward.NewEvaluator(reward.AllAchievements())
	p := domain.RewardProgress{
		CurrentStreak: 7,
		Unlocked:      map[string]bool{"streak_3": true, "streak_7": true},
	}
	for _, def := range ev.Evaluate(p, nil) {
		if def.ID == "streak_3" || def.ID == "streak_7" {
			t.Errorf("already-unlocked %q re-unlocked", def.ID)
		}
	}
}

func TestEvaluate_EventKindRule(t *testing.T) {
	ev := reward.NewEvaluator([]domain.AchievementDef{
		{
			ID:   "first_pr",
			Rule: domain.AchievementRule{Kind: domain.RuleEventOfKind, Event: domain.EventPRAchieved},
		},
	})
	p := domain.RewardProgress{Unlocked: map[string]bool{}}

	act := &reward.ClassifiedActivity{Kind: domain.EventPRAchieved}
	if got := ev.Evaluate(p, act); len(got) != 1 {
		t.Fatalf("expected first_pr to unlock, got %v", got)
	}

	other := &reward.ClassifiedActivity{Kind: domain.EventCardioCompleted}
	if got := ev.Evaluate(p, other); len(got) != 0 {
		t.Errorf("wrong event kind must not unlock, got %v", got)
	}
}

func TestEvaluate_ProgressRules(t *testing.T) {
	cases := []struct {
		name string
		rule domain.AchievementRule
		p    domain.RewardProgress
		want bool
	}{
		{"longest streak met", domain.AchievementRule{Kind: domain.RuleLongestStreakAtLeast, Threshold: 14},
			domain.RewardProgress{CurrentStreak: 1, LongestStreak: 14}, true},
		{"strength days short", domain.AchievementRule{Kind: domain.RuleStrengthDaysAtLeast, Threshold: 10},
			domain.RewardProgress{TotalStrengthDays: 9}, false},
		{"cardio days met", domain.AchievementRule{Kind: domain.RuleCardioDaysAtLeast, Threshold: 10},
			domain.RewardProgress{TotalCardioDays: 10}, true},
		{"mixed days met", domain.AchievementRule{Kind: domain.RuleMixedDaysAtLeast, Threshold: 7},
			domain.RewardProgress{ConsecutiveMixedDays: 7}, true},
		{"level met", domain.AchievementRule{Kind: domain.RuleLevelAtLeast, Threshold: 5},
			domain.RewardProgress{Level: 5}, true},
		{"xp short", domain.AchievementRule{Kind: domain.RuleXPAtLeast, Threshold: 10000},
			domain.RewardProgress{XP: 9999}, false},
	}
	for _, tc := range cases {
		ev := reward.NewEvaluator([]domain.AchievementDef{{ID: "probe", Rule: tc.rule}})
		tc.p.Unlocked = map[string]bool{}
		got := ev.Evaluate(tc.p, nil)
		if (len(got) == 1) != tc.want {
			t.Errorf("%s: unlocked=%v, want %v", tc.name, len(got) == 1, tc.want)
		}
	}
}
