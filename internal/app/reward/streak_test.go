package reward_test

import (
	"testing"
	"time"

	"github.com/stride-labs/stride/internal/app/reward"
	"github.com/stride-labs/stride/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak State Machine Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStreak_FirstActivity(t *testing.T) {
	cfg := reward.DefaultConfig()
	var p domain.RewardProgress

	tr := reward.AdvanceStreak(p, day(2026, 3, 1), domain.ActivityStrength, cfg)
	if tr.NewStreak != 1 {
		t.Errorf("expected streak 1 on first activity, got %d", tr.NewStreak)
	}
	if tr.Backfill || tr.SameDay {
		t.Error("first activity should be a plain advance")
	}
	if tr.ActivityAfter != domain.ActivityStrength {
		t.Errorf("expected activity strength, got %s", tr.ActivityAfter)
	}
}

func TestStreak_ConsecutiveDayIncrements(t *testing.T) {
	cfg := reward.DefaultConfig()
	p := domain.RewardProgress{
		CurrentStreak:    5,
		LongestStreak:    5,
		LastActivityAt:   day(2026, 3, 10),
		LastActivityType: domain.ActivityStrength,
	}

	tr := reward.AdvanceStreak(p, day(2026, 3, 11), domain.ActivityCardio, cfg)
	if tr.NewStreak != 6 {
		t.Errorf("expected 5 -> 6, got %d", tr.NewStreak)
	}
	if tr.ActivityAfter != domain.ActivityCardio {
		t.Errorf("expected activity cardio after advance, got %s", tr.ActivityAfter)
	}
}

func TestStreak_SameDayDoesNotIncrement(t *testing.T) {
	cfg := reward.DefaultConfig()
	p := domain.RewardProgress{
		CurrentStreak:    3,
		LastActivityAt:   day(2026, 3, 10),
		LastActivityType: domain.ActivityStrength,
	}

	// Different time of day, same calendar day.
	tr := reward.AdvanceStreak(p, day(2026, 3, 10).Add(9*time.Hour), domain.ActivityStrength, cfg)
	if !tr.SameDay {
		t.Error("expected same-day transition")
	}
	if tr.NewStreak != 3 {
		t.Errorf("expected streak unchanged at 3, got %d", tr.NewStreak)
	}
}

func TestStreak_SameDayMixedTurnsBoth(t *testing.T) {
	cfg := reward.DefaultConfig()
	p := domain.RewardProgress{
		CurrentStreak:    3,
		LastActivityAt:   day(2026, 3, 10),
		LastActivityType: domain.ActivityStrength,
	}

	tr := reward.AdvanceStreak(p, day(2026, 3, 10), domain.ActivityCardio, cfg)
	if tr.ActivityAfter != domain.ActivityBoth {
		t.Errorf("expected mix to become both, got %s", tr.ActivityAfter)
	}
	if !tr.NewMixedDay {
		t.Error("expected NewMixedDay on first mix of the day")
	}

	// A third session of either type must not count the day twice.
	p.LastActivityType = domain.ActivityBoth
	tr = reward.AdvanceStreak(p, day(2026, 3, 10), domain.ActivityStrength, cfg)
	if tr.NewMixedDay {
		t.Error("day already mixed, NewMixedDay must not fire again")
	}
}

func TestStreak_GapResetsToOne(t *testing.T) {
	cfg := reward.DefaultConfig()
	p := domain.RewardProgress{
		CurrentStreak:    5,
		LongestStreak:    5,
		LastActivityAt:   day(2026, 3, 10),
		LastActivityType: domain.ActivityStrength,
	}

	tr := reward.AdvanceStreak(p, day(2026, 3, 13), domain.ActivityStrength, cfg)
	if tr.NewStreak != 1 {
		t.Errorf("expected reset to 1 after 2-day gap, got %d", tr.NewStreak)
	}
	if tr.OldStreak != 5 {
		t.Errorf("expected old streak 5 preserved in transition, got %d", tr.OldStreak)
	}
}

func TestStreak_BackfillLeavesStreakAlone(t *testing.T) {
	cfg := reward.DefaultConfig()
	p := domain.RewardProgress{
		CurrentStreak:    4,
		LastActivityAt:   day(2026, 3, 10),
		LastActivityType: domain.ActivityStrength,
	}

	// Synced activity from three days before the last counted day.
	tr := reward.AdvanceStreak(p, day(2026, 3, 7), domain.ActivityCardio, cfg)
	if !tr.Backfill {
		t.Error("expected backfill transition")
	}
	if tr.NewStreak != 4 {
		t.Errorf("backfill must not touch the streak, got %d", tr.NewStreak)
	}
	if tr.HitMilestone {
		t.Error("backfill must not fire milestones")
	}
}

func TestStreak_MilestoneOnGrowthOnly(t *testing.T) {
	cfg := reward.DefaultConfig()

	p := domain.RewardProgress{
		CurrentStreak:    6,
		LastActivityAt:   day(2026, 3, 10),
		LastActivityType: domain.ActivityStrength,
	}
	tr := reward.AdvanceStreak(p, day(2026, 3, 11), domain.ActivityStrength, cfg)
	if tr.NewStreak != 7 || !tr.HitMilestone {
		t.Errorf("expected milestone at 7, got streak=%d milestone=%v", tr.NewStreak, tr.HitMilestone)
	}

	// Resetting down to 1 never counts as a milestone even though a
	// first-ever day 1 would not either.
	p.CurrentStreak = 10
	tr = reward.AdvanceStreak(p, day(2026, 3, 20), domain.ActivityStrength, cfg)
	if tr.HitMilestone {
		t.Error("reset to 1 must not be a milestone")
	}
}

func TestStreak_MilestoneTable(t *testing.T) {
	cfg := reward.DefaultConfig()

	cases := []struct {
		n    int
		want bool
	}{
		{1, false}, {2, false}, {3, true}, {7, true}, {14, true},
		{21, false}, {30, true}, {60, true}, {100, true},
		{105, true}, {112, true}, {119, true}, {120, false},
	}
	for _, c := range cases {
		if got := cfg.IsMilestone(c.n); got != c.want {
			t.Errorf("IsMilestone(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestDayOf_DSTBoundary(t *testing.T) {
	// Local-time instants on either side of a DST switch must map to
	// stable calendar days.
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 2026-03-29 02:00 CET -> 03:00 CEST: a 23-hour local day.
	before := time.Date(2026, 3, 29, 1, 30, 0, 0, loc)
	after := time.Date(2026, 3, 29, 23, 30, 0, 0, loc)

	if !domain.SameDay(before, after) {
		t.Error("instants on the same local calendar day must map to one day")
	}
	if got := domain.DaysBetween(before, before.AddDate(0, 0, 1)); got != 1 {
		t.Errorf("the shortened day must still count as exactly 1, got %d", got)
	}
}
