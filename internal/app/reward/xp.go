package reward

import (
	"fmt"

	"github.com/stride-labs/stride/internal/domain"
)

// ─── XP Rule Table ──────────────────────────────────────────────────────────
// Additive and per-kind: a base amount plus independently evaluated
// threshold bonuses. Each bonus produces its own line item so the
// summary can show a breakdown.

type xpBonus struct {
	Label     string
	Amount    int64
	Metric    string
	Threshold float64
}

type xpRule struct {
	BaseLabel string
	Base      int64
	Bonuses   []xpBonus
}

var xpRules = map[domain.EventKind]xpRule{
	domain.EventWorkoutCompleted: {
		BaseLabel: "Workout complete",
		Base:      20,
		Bonuses: []xpBonus{
			{Label: "45+ minute session", Amount: 10, Metric: "duration_minutes", Threshold: 45},
			{Label: "High-volume session", Amount: 10, Metric: "sets", Threshold: 20},
		},
	},
	domain.EventSetLogged: {
		BaseLabel: "Training day logged",
		Base:      5,
	},
	domain.EventCardioCompleted: {
		BaseLabel: "Cardio session",
		Base:      15,
		Bonuses: []xpBonus{
			{Label: "30+ minutes", Amount: 10, Metric: "duration_minutes", Threshold: 30},
			{Label: "60+ minutes", Amount: 15, Metric: "duration_minutes", Threshold: 60},
			{Label: "5K distance", Amount: 10, Metric: "distance_km", Threshold: 5},
			{Label: "10K distance", Amount: 20, Metric: "distance_km", Threshold: 10},
		},
	},
	domain.EventPRAchieved: {
		BaseLabel: "Personal record",
		Base:      25,
	},
	domain.EventExerciseNew: {
		BaseLabel: "New exercise",
		Base:      10,
	},
}

// ComputeXP evaluates the rule table for a classified activity.
// Always at least the base line item; bonuses are not mutually
// exclusive. Missing payload metrics read as 0 and fail their checks.
func ComputeXP(act *ClassifiedActivity) []domain.XPLineItem {
	rule, ok := xpRules[act.Kind]
	if !ok {
		return nil
	}

	items := []domain.XPLineItem{{Label: rule.BaseLabel, Amount: rule.Base}}
	for _, b := range rule.Bonuses {
		if act.Metric(b.Metric) >= b.Threshold {
			items = append(items, domain.XPLineItem{
				Label:  b.Label,
				Amount: b.Amount,
				Detail: fmt.Sprintf("%s ≥ %g", b.Metric, b.Threshold),
			})
		}
	}
	return items
}

// ─── Leveling ───────────────────────────────────────────────────────────────

// LevelForXP converts cumulative XP into (level, floor, ceiling).
// The curve is a monotone step function — the floor-to-ceiling gap
// grows by 50 XP per level: ceilings run 100, 200, 350, 550, …
// The loop supports multiple level-ups from a single large delta.
func LevelForXP(xp int64) (level int, floor, ceiling int64) {
	level, floor, ceiling = 1, 0, 100
	for xp >= ceiling {
		level++
		floor = ceiling
		ceiling = floor + int64(50+(level-1)*50)
	}
	return level, floor, ceiling
}

// SnapshotXP builds the before/after snapshot for a delta, so the
// presentation layer can animate the bar across level boundaries.
func SnapshotXP(before, after int64) *domain.XPSnapshot {
	bl, bf, bc := LevelForXP(before)
	al, af, ac := LevelForXP(after)
	return &domain.XPSnapshot{
		BeforeXP:      before,
		BeforeLevel:   bl,
		BeforeFloor:   bf,
		BeforeCeiling: bc,
		AfterXP:       after,
		AfterLevel:    al,
		AfterFloor:    af,
		AfterCeiling:  ac,
		XPGained:      after - before,
	}
}
