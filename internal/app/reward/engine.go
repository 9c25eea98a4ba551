package reward

import (
	"log"
	"sync"
	"time"

	"github.com/stride-labs/stride/internal/domain"
	"github.com/stride-labs/stride/internal/infra/metrics"
)

// ─── Reward Engine ──────────────────────────────────────────────────────────
// Single entry point Process(event). All calls are serialized behind a
// mutex: streak and XP invariants depend on an ordered view of
// progress. Producers (UI logging, background sync, bulk import) may
// run concurrently; they all hand events to this one writer.

// Engine orchestrates classifier → streak → XP → achievements →
// persistence → summary.
type Engine struct {
	mu sync.Mutex

	store      domain.ProgressStore
	classifier *Classifier
	evaluator  *Evaluator
	cfg        Config

	// In-memory state, authoritative for the session. The sqlite save
	// is fire-and-forget; a failed save sets dirty and the next
	// mutation rewrites the whole aggregate.
	progress     domain.RewardProgress
	seenSources  map[string]bool
	strengthDays map[string]bool
	cardioDays   map[string]bool
	inAppDays    map[string]bool
	dirty        bool
	saves        sync.WaitGroup

	// Saves run off the caller's path but must not interleave: saveMu
	// serializes writers, and the sequence numbers guarantee an older
	// snapshot never overwrites a newer one. saveSeq is guarded by mu,
	// savedSeq by saveMu.
	saveMu   sync.Mutex
	saveSeq  uint64
	savedSeq uint64

	// sink receives every emitted summary (the win-screen coordinator).
	sink func(domain.RewardSummary)
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig overrides the default thresholds and milestones.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithAchievements overrides the achievement table (tests).
func WithAchievements(defs []domain.AchievementDef) Option {
	return func(e *Engine) { e.evaluator = NewEvaluator(defs) }
}

// New creates an engine and loads persisted state from the store.
func New(store domain.ProgressStore, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:     store,
		cfg:       DefaultConfig(),
		evaluator: NewEvaluator(AllAchievements()),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.classifier = NewClassifier(e.cfg)

	progress, err := store.LoadProgress()
	if err != nil {
		return nil, err
	}
	if progress.Unlocked == nil {
		progress.Unlocked = make(map[string]bool)
	}
	if progress.Level == 0 {
		progress.Level, progress.LevelFloor, progress.LevelCeiling = LevelForXP(progress.XP)
	}
	if progress.LastActivityType == "" {
		progress.LastActivityType = domain.ActivityNone
	}
	e.progress = progress

	unlocked, err := store.UnlockedAchievements()
	if err != nil {
		return nil, err
	}
	for _, u := range unlocked {
		e.progress.Unlocked[u.ID] = true
	}

	e.seenSources, err = store.ProcessedSources()
	if err != nil {
		return nil, err
	}
	e.strengthDays, e.cardioDays, e.inAppDays, err = store.ActivityDays()
	if err != nil {
		return nil, err
	}

	metrics.StreakCurrent.Set(float64(e.progress.CurrentStreak))
	metrics.LevelCurrent.Set(float64(e.progress.Level))
	return e, nil
}

// SetSummarySink registers the consumer of emitted summaries.
// Must be called before the first Process.
func (e *Engine) SetSummarySink(fn func(domain.RewardSummary)) {
	e.sink = fn
}

// Progress returns a copy of the current reward state for display.
func (e *Engine) Progress() domain.RewardProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.progress
	p.Unlocked = cloneSet(e.progress.Unlocked)
	return p
}

// Achievements returns the static achievement table.
func (e *Engine) Achievements() []domain.AchievementDef {
	return e.evaluator.Definitions()
}

// SourceProcessed implements ClassifierEnv.
func (e *Engine) SourceProcessed(id string) bool { return e.seenSources[id] }

// InAppWorkoutOn implements ClassifierEnv.
func (e *Engine) InAppWorkoutOn(dayKey string) bool { return e.inAppDays[dayKey] }

// Process runs one event through the pipeline. A nil summary means the
// event did not count: below threshold, a replay, or malformed. No
// state is touched in that case. Reward faults never interrupt the
// user's action, so Process does not return an error.
func (e *Engine) Process(ev domain.Event) *domain.RewardSummary {
	e.mu.Lock()
	summary := e.process(ev)
	e.mu.Unlock()

	if summary != nil && e.sink != nil {
		e.sink(*summary)
	}
	return summary
}

// process holds the lock.
func (e *Engine) process(ev domain.Event) *domain.RewardSummary {
	act, reason := e.classifier.Classify(ev, e)
	if act == nil {
		metrics.EventsRejected.WithLabelValues(string(ev.Kind), reason).Inc()
		return nil
	}

	// Everything below operates on a copy; e.progress is replaced only
	// once the whole transition is computed.
	p := e.progress
	p.Unlocked = cloneSet(e.progress.Unlocked)

	tr := AdvanceStreak(p, act.Day, act.Activity, e.cfg)
	if !tr.Backfill {
		p.CurrentStreak = tr.NewStreak
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
		p.LastActivityType = tr.ActivityAfter
		if domain.DayOf(act.Day).After(domain.DayOf(p.LastActivityAt)) || p.LastActivityAt.IsZero() {
			p.LastActivityAt = act.Day
		}
		if tr.NewMixedDay {
			p.ConsecutiveMixedDays++
		}
	}
	e.countActivityDay(&p, act)

	// Base XP for the event itself.
	items := ComputeXP(act)
	beforeXP := p.XP
	var coins int64
	for _, it := range items {
		p.XP += it.Amount
	}
	p.Level, p.LevelFloor, p.LevelCeiling = LevelForXP(p.XP)

	// Achievement unlocks fold into the same delta, after the base XP,
	// so the snapshot reflects the combined total.
	newly := e.evaluator.Evaluate(p, act)
	var unlockedIDs []string
	for _, def := range newly {
		p.Unlocked[def.ID] = true
		unlockedIDs = append(unlockedIDs, def.ID)
		p.XP += def.XPReward
		coins += def.CoinReward
		items = append(items, domain.XPLineItem{
			Label:  def.Name,
			Amount: def.XPReward,
			Detail: "Achievement unlocked",
		})
	}
	if tr.HitMilestone {
		coins += int64(tr.NewStreak)
	}
	p.Coins += coins
	p.Level, p.LevelFloor, p.LevelCeiling = LevelForXP(p.XP)

	summary := &domain.RewardSummary{
		XP:                   p.XP - beforeXP,
		Coins:                coins,
		PRCount:              act.PRCount(),
		NewExerciseCount:     act.NewExerciseCount(),
		StreakOld:            tr.OldStreak,
		StreakNew:            tr.NewStreak,
		HitStreakMilestone:   tr.HitMilestone,
		UnlockedAchievements: unlockedIDs,
		XPLineItems:          items,
	}
	if p.XP > beforeXP {
		summary.XPSnapshot = SnapshotXP(beforeXP, p.XP)
		if summary.XPSnapshot.AfterLevel > summary.XPSnapshot.BeforeLevel {
			summary.LevelUpTo = summary.XPSnapshot.AfterLevel
		}
	}

	// Commit in memory, then persist without blocking the caller.
	e.progress = p
	if ev.SourceID != "" {
		e.seenSources[ev.SourceID] = true
	}
	e.persistAsync(ev, act, unlockedIDs)

	metrics.EventsProcessed.WithLabelValues(string(ev.Kind)).Inc()
	metrics.XPGranted.Add(float64(summary.XP))
	metrics.AchievementsUnlocked.Add(float64(len(unlockedIDs)))
	metrics.StreakCurrent.Set(float64(p.CurrentStreak))
	metrics.LevelCurrent.Set(float64(p.Level))
	return summary
}

// countActivityDay bumps the per-day aggregate counters. These run
// even for backfilled activity and never decrease.
func (e *Engine) countActivityDay(p *domain.RewardProgress, act *ClassifiedActivity) {
	key := domain.DayKey(act.Day)
	strength := act.Activity == domain.ActivityStrength || act.Activity == domain.ActivityBoth
	cardio := act.Activity == domain.ActivityCardio || act.Activity == domain.ActivityBoth

	if strength && !e.strengthDays[key] {
		e.strengthDays[key] = true
		p.TotalStrengthDays++
	}
	if cardio && !e.cardioDays[key] {
		e.cardioDays[key] = true
		p.TotalCardioDays++
	}
	if act.InAppWorkout() {
		e.inAppDays[key] = true
	}
}

// persistAsync writes the transition to the store off the caller's
// path. Failure is logged and the aggregate is rewritten on the next
// mutation; the in-memory copy stays authoritative either way.
func (e *Engine) persistAsync(ev domain.Event, act *ClassifiedActivity, unlockedIDs []string) {
	p := e.progress
	p.Unlocked = cloneSet(e.progress.Unlocked)
	dayKey := domain.DayKey(act.Day)
	activity := act.Activity
	inApp := act.InAppWorkout()
	sourceID := ev.SourceID
	now := time.Now()

	e.saveSeq++
	seq := e.saveSeq

	e.saves.Add(1)
	go func() {
		defer e.saves.Done()
		e.saveMu.Lock()
		defer e.saveMu.Unlock()

		// Unlocks, the source ledger and the day journal are append-only
		// and idempotent; they apply regardless of snapshot order.
		failed := false
		for _, id := range unlockedIDs {
			if _, err := e.store.UnlockAchievement(id, now); err != nil {
				log.Printf("[reward] unlock %s not persisted: %v", id, err)
				failed = true
			}
		}
		if sourceID != "" {
			if err := e.store.MarkSourceProcessed(sourceID, now); err != nil {
				log.Printf("[reward] source ledger write failed: %v", err)
				failed = true
			}
		}
		if err := e.store.RecordActivityDay(dayKey, activity, inApp); err != nil {
			log.Printf("[reward] activity journal write failed: %v", err)
			failed = true
		}

		// The aggregate is written only when this snapshot is still the
		// newest; a superseded snapshot is skipped, never persisted.
		wroteAggregate := false
		if seq > e.savedSeq {
			if err := e.store.SaveProgress(p); err != nil {
				log.Printf("[reward] save progress failed (will retry on next event): %v", err)
				failed = true
			} else {
				e.savedSeq = seq
				wroteAggregate = true
			}
		}

		e.mu.Lock()
		if failed {
			e.dirty = true
			metrics.SaveFailures.Inc()
		} else if e.dirty && wroteAggregate {
			// This save carried the whole aggregate, so earlier
			// failures are covered.
			e.dirty = false
		}
		e.mu.Unlock()
	}()
}

// Flush blocks until all in-flight persistence writes have finished.
// Called on shutdown so a clean exit does not drop the last event.
func (e *Engine) Flush() {
	e.saves.Wait()
}

func cloneSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
