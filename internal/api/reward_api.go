package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stride-labs/stride/internal/domain"
)

// ─── Event Ingestion ────────────────────────────────────────────────────────

// eventRequest is the wire form of a raw activity event.
type eventRequest struct {
	Kind         string         `json:"kind"`
	ActivityDate time.Time      `json:"activity_date"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	SourceID     string         `json:"source_id,omitempty"`
}

// eventResponse reports whether the event counted and, if it did, the
// resulting summary (pre-coalescing).
type eventResponse struct {
	Accepted bool                  `json:"accepted"`
	Summary  *domain.RewardSummary `json:"summary,omitempty"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Kind == "" || req.ActivityDate.IsZero() {
		writeError(w, http.StatusBadRequest, "kind and activity_date are required")
		return
	}

	ev := domain.Event{
		ID:           "evt-" + uuid.New().String()[:8],
		Kind:         domain.EventKind(req.Kind),
		ActivityDate: req.ActivityDate,
		Metadata:     req.Metadata,
		SourceID:     req.SourceID,
	}

	summary := s.engine.Process(ev)
	writeJSON(w, http.StatusOK, eventResponse{
		Accepted: summary != nil,
		Summary:  summary,
	})
}

// ─── Progress & Achievements ────────────────────────────────────────────────

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Progress())
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	progress := s.engine.Progress()

	type achievementView struct {
		domain.AchievementDef
		Unlocked bool `json:"unlocked"`
	}

	defs := s.engine.Achievements()
	out := make([]achievementView, len(defs))
	for i, def := range defs {
		out[i] = achievementView{
			AchievementDef: def,
			Unlocked:       progress.HasUnlocked(def.ID),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"achievements": out,
		"unlocked":     len(progress.Unlocked),
		"total":        len(defs),
	})
}

// ─── Win Screen ─────────────────────────────────────────────────────────────

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	current := s.wins.Current()
	if current == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.wins.Dismiss()
	w.WriteHeader(http.StatusOK)
}
