// Package metrics provides Prometheus metrics for the reward engine:
// counters for processed and rejected events, XP and achievement
// grants, and gauges for the current streak and level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Events ─────────────────────────────────────────────────────────────────

// EventsProcessed counts events that produced a reward summary.
var EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "stride",
	Name:      "events_processed_total",
	Help:      "Activity events that counted toward rewards.",
}, []string{"kind"})

// EventsRejected counts events dropped by classification.
var EventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "stride",
	Name:      "events_rejected_total",
	Help:      "Activity events rejected by the classifier.",
}, []string{"kind", "reason"})

// ─── Rewards ────────────────────────────────────────────────────────────────

// XPGranted counts total XP granted, achievements included.
var XPGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stride",
	Name:      "xp_granted_total",
	Help:      "Total experience points granted.",
})

// AchievementsUnlocked counts achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stride",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// StreakCurrent tracks the current streak length in days.
var StreakCurrent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "stride",
	Name:      "streak_current_days",
	Help:      "Current streak length in days.",
})

// LevelCurrent tracks the current user level.
var LevelCurrent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "stride",
	Name:      "level_current",
	Help:      "Current user level.",
})

// ─── Persistence ────────────────────────────────────────────────────────────

// SaveFailures counts failed progress writes (retried on next event).
var SaveFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stride",
	Name:      "progress_save_failures_total",
	Help:      "Failed progress persistence writes.",
})

// ─── Win Screen ─────────────────────────────────────────────────────────────

// SummariesCoalesced counts summaries merged into an earlier batch.
var SummariesCoalesced = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stride",
	Name:      "summaries_coalesced_total",
	Help:      "Reward summaries merged into a coalescing batch.",
})

// SummariesDisplayed counts batches surfaced to the presentation layer.
var SummariesDisplayed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stride",
	Name:      "summaries_displayed_total",
	Help:      "Merged reward summaries surfaced for display.",
})
