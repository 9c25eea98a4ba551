// Package winscreen coalesces reward summaries for display.
// Near-simultaneous results (a workout completion plus the cardio
// session it imported, say) must surface as ONE celebration screen,
// never as two overlapping ones.
package winscreen

import (
	"sync"
	"time"

	"github.com/stride-labs/stride/internal/app/reward"
	"github.com/stride-labs/stride/internal/domain"
	"github.com/stride-labs/stride/internal/infra/metrics"
)

// DefaultWindow is the coalescing window: summaries arriving within
// this span of the first one are merged into a single display unit.
const DefaultWindow = 400 * time.Millisecond

// ─── Clock Abstraction ──────────────────────────────────────────────────────
// The timer is injectable so tests drive the window by hand instead of
// sleeping through real wall-clock delays. A scheduled callback is
// never cancelled; firing into a closed cycle is a no-op in flush.

// Clock schedules callbacks after a delay.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ─── Coordinator ────────────────────────────────────────────────────────────

// Coordinator implements the win-screen state machine:
//
//	Idle ──summary──▶ Collecting ──window elapses──▶ displayable, back to Idle
//
// While collecting, further summaries merge into the buffer; the
// window is FIXED from the first arrival, not sliding, so a steady
// trickle of events cannot starve the user of a screen. A summary
// being viewed is never overwritten: a batch completing during
// display is held back until Dismiss.
type Coordinator struct {
	mu     sync.Mutex
	window time.Duration
	clock  Clock

	collecting bool
	buffer     *domain.RewardSummary

	displayable *domain.RewardSummary
	pending     *domain.RewardSummary
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock injects a controllable clock (tests).
func WithClock(c Clock) Option {
	return func(co *Coordinator) { co.clock = c }
}

// WithWindow overrides the coalescing window.
func WithWindow(d time.Duration) Option {
	return func(co *Coordinator) { co.window = d }
}

// New creates a coordinator with the default 400 ms window.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		window: DefaultWindow,
		clock:  realClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit accepts one summary from the reward engine.
func (c *Coordinator) Submit(s domain.RewardSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.collecting {
		merged := Merge(*c.buffer, s)
		c.buffer = &merged
		metrics.SummariesCoalesced.Inc()
		return
	}

	c.collecting = true
	buf := s
	c.buffer = &buf
	c.clock.AfterFunc(c.window, c.flush)
}

// flush closes the collecting cycle when the window elapses.
// The timer may fire into an already-cleared buffer; that is a no-op.
func (c *Coordinator) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer == nil {
		return
	}
	batch := c.buffer
	c.buffer = nil
	c.collecting = false

	if c.displayable == nil {
		c.displayable = batch
		metrics.SummariesDisplayed.Inc()
		return
	}
	// The user is still viewing a summary. Hold the new batch; it
	// surfaces on dismissal.
	if c.pending != nil {
		merged := Merge(*c.pending, *batch)
		c.pending = &merged
	} else {
		c.pending = batch
	}
}

// Current returns the currently displayable summary, nil when idle.
func (c *Coordinator) Current() *domain.RewardSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayable
}

// Dismiss clears the displayed summary. If a completed batch queued up
// during the display, it becomes displayable immediately.
func (c *Coordinator) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.displayable = nil
	if c.pending != nil {
		c.displayable = c.pending
		c.pending = nil
		metrics.SummariesDisplayed.Inc()
	}
}

// ─── Merge Rule ─────────────────────────────────────────────────────────────

// Merge combines two summaries into one presentable unit. Counters
// sum; the streak range widens; line items concatenate in arrival
// order (duplicates are distinct contributions); the snapshot is
// recomputed from the combined delta so the animated before/after
// range stays correct across the merge.
func Merge(a, b domain.RewardSummary) domain.RewardSummary {
	out := domain.RewardSummary{
		XP:                 a.XP + b.XP,
		Coins:              a.Coins + b.Coins,
		PRCount:            a.PRCount + b.PRCount,
		NewExerciseCount:   a.NewExerciseCount + b.NewExerciseCount,
		StreakOld:          min(a.StreakOld, b.StreakOld),
		StreakNew:          max(a.StreakNew, b.StreakNew),
		HitStreakMilestone: a.HitStreakMilestone || b.HitStreakMilestone,
		LevelUpTo:          max(a.LevelUpTo, b.LevelUpTo),
	}

	out.UnlockedAchievements = unionOrdered(a.UnlockedAchievements, b.UnlockedAchievements)
	out.XPLineItems = append(append([]domain.XPLineItem{}, a.XPLineItems...), b.XPLineItems...)

	switch {
	case a.XPSnapshot == nil:
		out.XPSnapshot = b.XPSnapshot
	case b.XPSnapshot == nil:
		out.XPSnapshot = a.XPSnapshot
	default:
		out.XPSnapshot = reward.SnapshotXP(a.XPSnapshot.BeforeXP, a.XPSnapshot.BeforeXP+out.XP)
	}
	return out
}

// unionOrdered merges two ID lists preserving first-seen order.
func unionOrdered(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, id := range append(append([]string{}, a...), b...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
