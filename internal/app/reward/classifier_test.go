package reward_test

import (
	"testing"

	"github.com/stride-labs/stride/internal/app/reward"
	"github.com/stride-labs/stride/internal/domain"
)

// fakeEnv is a hand-rolled ClassifierEnv for classification tests.
type fakeEnv struct {
	sources map[string]bool
	inApp   map[string]bool
}

func (f fakeEnv) SourceProcessed(id string) bool { return f.sources[id] }
func (f fakeEnv) InAppWorkoutOn(key string) bool { return f.inApp[key] }

// ═══════════════════════════════════════════════════════════════════════════
// Classification Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestClassify_MissingDateRejected(t *testing.T) {
	c := reward.NewClassifier(reward.DefaultConfig())
	act, reason := c.Classify(domain.Event{Kind: domain.EventWorkoutCompleted}, fakeEnv{})
	if act != nil {
		t.Fatal("expected rejection for zero activity date")
	}
	if reason != reward.RejectInvalid {
		t.Errorf("expected reason %q, got %q", reward.RejectInvalid, reason)
	}
}

func TestClassify_UnknownKindRejected(t *testing.T) {
	c := reward.NewClassifier(reward.DefaultConfig())
	act, reason := c.Classify(domain.Event{
		Kind:         "meal_logged",
		ActivityDate: day(2026, 4, 1),
	}, fakeEnv{})
	if act != nil || reason != reward.RejectUnknownKind {
		t.Errorf("expected unknown_kind rejection, got act=%v reason=%q", act, reason)
	}
}

func TestClassify_ReplayedSourceRejected(t *testing.T) {
	c := reward.NewClassifier(reward.DefaultConfig())
	env := fakeEnv{sources: map[string]bool{"hk-42": true}}

	act, reason := c.Classify(domain.Event{
		Kind:         domain.EventCardioCompleted,
		ActivityDate: day(2026, 4, 1),
		SourceID:     "hk-42",
		Metadata: map[string]any{
			"cardio_type":      "running",
			"duration_minutes": 45.0,
		},
	}, env)
	if act != nil {
		t.Fatal("replayed source must be dropped")
	}
	if reason != reward.RejectReplay {
		t.Errorf("expected replay rejection, got %q", reason)
	}
}

func TestClassify_SetLoggedThreshold(t *testing.T) {
	c := reward.NewClassifier(reward.DefaultConfig())

	// Two sets, five minutes: below both gates.
	act, reason := c.Classify(domain.Event{
		Kind:         domain.EventSetLogged,
		ActivityDate: day(2026, 4, 1),
		Metadata:     map[string]any{"sets_today": 2, "elapsed_minutes": 5.0},
	}, fakeEnv{})
	if act != nil || reason != reward.RejectBelowThreshold {
		t.Errorf("expected below_threshold, got act=%v reason=%q", act, reason)
	}

	// Third set of the day clears the count gate.
	act, _ = c.Classify(domain.Event{
		Kind:         domain.EventSetLogged,
		ActivityDate: day(2026, 4, 1),
		Metadata:     map[string]any{"sets_today": 3, "elapsed_minutes": 5.0},
	}, fakeEnv{})
	if act == nil {
		t.Fatal("3 sets must clear the minimum-effort gate")
	}
	if act.Activity != domain.ActivityStrength {
		t.Errorf("expected strength activity, got %s", act.Activity)
	}

	// Two sets but a long elapsed session clears the time gate.
	act, _ = c.Classify(domain.Event{
		Kind:         domain.EventSetLogged,
		ActivityDate: day(2026, 4, 1),
		Metadata:     map[string]any{"sets_today": 2, "elapsed_minutes": 15.0},
	}, fakeEnv{})
	if act == nil {
		t.Error("15 elapsed minutes must clear the minimum-effort gate")
	}
}

func TestClassify_CardioFloors(t *testing.T) {
	c := reward.NewClassifier(reward.DefaultConfig())

	cases := []struct {
		name     string
		meta     map[string]any
		accepted bool
	}{
		{"short run", map[string]any{"cardio_type": "running", "duration_minutes": 5.0, "distance_km": 0.5}, false},
		{"run by time", map[string]any{"cardio_type": "running", "duration_minutes": 12.0}, true},
		{"run by distance", map[string]any{"cardio_type": "running", "distance_km": 1.5}, true},
		{"short walk", map[string]any{"cardio_type": "walking", "duration_minutes": 20.0, "distance_km": 1.0}, false},
		{"long walk", map[string]any{"cardio_type": "walking", "duration_minutes": 35.0}, true},
		{"walk by distance", map[string]any{"cardio_type": "walking", "distance_km": 4.0}, true},
		{"short swim", map[string]any{"cardio_type": "swimming", "duration_minutes": 10.0}, false},
		{"real swim", map[string]any{"cardio_type": "swimming", "duration_minutes": 25.0}, true},
	}
	for _, tc := range cases {
		act, _ := c.Classify(domain.Event{
			Kind:         domain.EventCardioCompleted,
			ActivityDate: day(2026, 4, 1),
			Metadata:     tc.meta,
		}, fakeEnv{})
		if (act != nil) != tc.accepted {
			t.Errorf("%s: accepted=%v, want %v", tc.name, act != nil, tc.accepted)
		}
	}
}

func TestClassify_ExternalStrengthDuplicateDropped(t *testing.T) {
	c := reward.NewClassifier(reward.DefaultConfig())
	env := fakeEnv{inApp: map[string]bool{"2026-04-01": true}}

	// A synced strength_training session on a day that already has an
	// in-app workout is the same training seen twice.
	ev := domain.Event{
		Kind:         domain.EventCardioCompleted,
		ActivityDate: day(2026, 4, 1),
		SourceID:     "hk-77",
		Metadata: map[string]any{
			"cardio_type":      "strength_training",
			"duration_minutes": 40.0,
		},
	}
	act, reason := c.Classify(ev, env)
	if act != nil || reason != reward.RejectDuplicateWorkout {
		t.Errorf("expected duplicate_workout, got act=%v reason=%q", act, reason)
	}

	// Same event on a day without an in-app workout counts as strength.
	act, _ = c.Classify(ev, fakeEnv{})
	if act == nil {
		t.Fatal("external strength session should count when not duplicated")
	}
	if act.Activity != domain.ActivityStrength {
		t.Errorf("expected strength classification, got %s", act.Activity)
	}
	if act.Cardio != nil {
		t.Error("external strength session must not carry a cardio payload")
	}
}

func TestClassify_PayloadProjection(t *testing.T) {
	c := reward.NewClassifier(reward.DefaultConfig())
	act, _ := c.Classify(domain.Event{
		Kind:         domain.EventWorkoutCompleted,
		ActivityDate: day(2026, 4, 1),
		Metadata: map[string]any{
			// JSON decoding hands numbers over as float64.
			"duration_minutes": 52.5,
			"sets":             float64(18),
			"pr_count":         float64(2),
			"new_exercises":    float64(1),
		},
	}, fakeEnv{})
	if act == nil {
		t.Fatal("workout rejected")
	}
	if act.Strength == nil {
		t.Fatal("expected strength payload")
	}
	if act.Strength.Sets != 18 || act.Strength.PRCount != 2 || act.Strength.NewExercises != 1 {
		t.Errorf("payload projection wrong: %+v", act.Strength)
	}
	if act.PRCount() != 2 || act.NewExerciseCount() != 1 {
		t.Errorf("counts wrong: pr=%d new=%d", act.PRCount(), act.NewExerciseCount())
	}
}
