// Package reward implements the Stride reward & streak engine.
// Raw activity events are classified, folded into the streak state
// machine and the XP/level calculator, checked against the achievement
// table, and emitted as reward summaries.
package reward

import (
	"time"

	"github.com/stride-labs/stride/internal/domain"
)

// ─── Classification ─────────────────────────────────────────────────────────

// Reject reasons reported to metrics. Rejection is never an error:
// the event simply does not count.
const (
	RejectInvalid          = "invalid"
	RejectUnknownKind      = "unknown_kind"
	RejectReplay           = "replay"
	RejectBelowThreshold   = "below_threshold"
	RejectDuplicateWorkout = "duplicate_workout"
)

// CardioPayload is the typed projection of a cardio event's metadata.
type CardioPayload struct {
	Type            string
	DurationMinutes float64
	DistanceKm      float64
	Calories        float64
}

// StrengthPayload is the typed projection of a strength event's metadata.
type StrengthPayload struct {
	DurationMinutes float64
	Sets            int
	PRCount         int
	NewExercises    int
}

// ClassifiedActivity is an event that cleared the minimum-effort gate,
// with its metadata projected into a typed per-kind payload.
type ClassifiedActivity struct {
	Kind     domain.EventKind
	SourceID string
	Day      time.Time // calendar day, midnight UTC
	Activity domain.ActivityType

	Cardio   *CardioPayload
	Strength *StrengthPayload
}

// Metric exposes payload numbers to the declarative XP bonus table.
// Unknown names read as 0 and fail their threshold checks.
func (c *ClassifiedActivity) Metric(name string) float64 {
	switch name {
	case "duration_minutes":
		if c.Cardio != nil {
			return c.Cardio.DurationMinutes
		}
		if c.Strength != nil {
			return c.Strength.DurationMinutes
		}
	case "distance_km":
		if c.Cardio != nil {
			return c.Cardio.DistanceKm
		}
	case "sets":
		if c.Strength != nil {
			return float64(c.Strength.Sets)
		}
	}
	return 0
}

// PRCount returns the personal records this activity carries.
func (c *ClassifiedActivity) PRCount() int {
	if c.Kind == domain.EventPRAchieved {
		return 1
	}
	if c.Strength != nil {
		return c.Strength.PRCount
	}
	return 0
}

// InAppWorkout reports whether this activity is a strength session
// logged in the app itself. Bare PR and new-exercise events are not
// sessions and must not block a later synced workout for the day.
func (c *ClassifiedActivity) InAppWorkout() bool {
	if c.SourceID != "" {
		return false
	}
	return c.Kind == domain.EventWorkoutCompleted || c.Kind == domain.EventSetLogged
}

// NewExerciseCount returns the first-time exercises this activity carries.
func (c *ClassifiedActivity) NewExerciseCount() int {
	if c.Kind == domain.EventExerciseNew {
		return 1
	}
	if c.Strength != nil {
		return c.Strength.NewExercises
	}
	return 0
}

// ClassifierEnv supplies the state lookups classification needs: the
// external-source idempotency ledger and the in-app workout day set.
type ClassifierEnv interface {
	SourceProcessed(id string) bool
	InAppWorkoutOn(dayKey string) bool
}

// Classifier gates raw events. An event that fails the per-kind
// minimum-effort threshold, or replays an already-processed external
// source, is dropped before it can touch any state.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns the classified activity, or nil plus a reject
// reason when the event does not count. Replay detection runs before
// threshold checks so a replayed event is dropped regardless of effort.
func (c *Classifier) Classify(ev domain.Event, env ClassifierEnv) (*ClassifiedActivity, string) {
	if ev.ActivityDate.IsZero() {
		return nil, RejectInvalid
	}
	if ev.SourceID != "" && env.SourceProcessed(ev.SourceID) {
		return nil, RejectReplay
	}

	act := &ClassifiedActivity{
		Kind:     ev.Kind,
		SourceID: ev.SourceID,
		Day:      domain.DayOf(ev.ActivityDate),
	}

	switch ev.Kind {
	case domain.EventWorkoutCompleted:
		act.Activity = domain.ActivityStrength
		act.Strength = &StrengthPayload{
			DurationMinutes: ev.MetaFloat("duration_minutes"),
			Sets:            ev.MetaInt("sets"),
			PRCount:         ev.MetaInt("pr_count"),
			NewExercises:    ev.MetaInt("new_exercises"),
		}
		return act, ""

	case domain.EventSetLogged:
		// A lone set must not be gameable into a streak day: logged
		// sets count only once the day's workout reaches the minimum
		// set count or elapsed time.
		sets := ev.MetaInt("sets_today")
		elapsed := ev.MetaFloat("elapsed_minutes")
		if sets < c.cfg.MinSetsPerDay && elapsed < c.cfg.MinSetMinutes {
			return nil, RejectBelowThreshold
		}
		act.Activity = domain.ActivityStrength
		act.Strength = &StrengthPayload{
			DurationMinutes: elapsed,
			Sets:            sets,
		}
		return act, ""

	case domain.EventCardioCompleted:
		payload := &CardioPayload{
			Type:            ev.MetaString("cardio_type"),
			DurationMinutes: ev.MetaFloat("duration_minutes"),
			DistanceKm:      ev.MetaFloat("distance_km"),
			Calories:        ev.MetaFloat("calories"),
		}
		if payload.Type == "strength_training" {
			// External strength session. Policy, not error: if an
			// in-app workout already represents this day's training,
			// drop it rather than double-count.
			if ev.SourceID != "" && env.InAppWorkoutOn(domain.DayKey(act.Day)) {
				return nil, RejectDuplicateWorkout
			}
			if payload.DurationMinutes < c.cfg.GeneralMinMinutes {
				return nil, RejectBelowThreshold
			}
			act.Activity = domain.ActivityStrength
			act.Strength = &StrengthPayload{DurationMinutes: payload.DurationMinutes}
			return act, ""
		}
		if !cardioClearsFloor(payload, c.cfg) {
			return nil, RejectBelowThreshold
		}
		act.Activity = domain.ActivityCardio
		act.Cardio = payload
		return act, ""

	case domain.EventPRAchieved, domain.EventExerciseNew:
		act.Activity = domain.ActivityStrength
		return act, ""
	}

	return nil, RejectUnknownKind
}

// cardioClearsFloor applies the per-type minimum-effort floors.
func cardioClearsFloor(p *CardioPayload, cfg Config) bool {
	switch p.Type {
	case "running", "cycling":
		return p.DurationMinutes >= cfg.RunMinMinutes || p.DistanceKm >= cfg.RunMinKm
	case "walking":
		return p.DurationMinutes >= cfg.WalkMinMinutes || p.DistanceKm >= cfg.WalkMinKm
	default:
		return p.DurationMinutes >= cfg.GeneralMinMinutes
	}
}
