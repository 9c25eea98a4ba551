package sqlite

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stride-labs/stride/internal/domain"
)

// DB implements domain.ProgressStore.

// ─── Progress Aggregate ─────────────────────────────────────────────────────

// LoadProgress reads the persisted reward aggregate. A fresh database
// yields the zero value — first activity creates the record.
func (d *DB) LoadProgress() (domain.RewardProgress, error) {
	var p domain.RewardProgress

	intFields := map[string]*int{
		"current_streak":         &p.CurrentStreak,
		"longest_streak":         &p.LongestStreak,
		"total_strength_days":    &p.TotalStrengthDays,
		"total_cardio_days":      &p.TotalCardioDays,
		"consecutive_mixed_days": &p.ConsecutiveMixedDays,
		"level":                  &p.Level,
	}
	for key, dst := range intFields {
		v, err := d.getState(key)
		if err != nil {
			return p, fmt.Errorf("get %s: %w", key, err)
		}
		if v != "" {
			*dst, _ = strconv.Atoi(v)
		}
	}

	int64Fields := map[string]*int64{
		"xp":            &p.XP,
		"level_floor":   &p.LevelFloor,
		"level_ceiling": &p.LevelCeiling,
		"coins":         &p.Coins,
	}
	for key, dst := range int64Fields {
		v, err := d.getState(key)
		if err != nil {
			return p, fmt.Errorf("get %s: %w", key, err)
		}
		if v != "" {
			*dst, _ = strconv.ParseInt(v, 10, 64)
		}
	}

	lastAt, err := d.getState("last_activity_at")
	if err != nil {
		return p, fmt.Errorf("get last_activity_at: %w", err)
	}
	if lastAt != "" {
		ts, _ := strconv.ParseInt(lastAt, 10, 64)
		p.LastActivityAt = time.Unix(ts, 0).UTC()
	}

	lastType, err := d.getState("last_activity_type")
	if err != nil {
		return p, fmt.Errorf("get last_activity_type: %w", err)
	}
	p.LastActivityType = domain.ActivityType(lastType)
	if p.LastActivityType == "" {
		p.LastActivityType = domain.ActivityNone
	}

	p.Unlocked = make(map[string]bool)
	return p, nil
}

// SaveProgress persists the whole aggregate to the state table.
// The unlocked set lives in the achievements table, not here.
func (d *DB) SaveProgress(p domain.RewardProgress) error {
	pairs := map[string]string{
		"current_streak":         strconv.Itoa(p.CurrentStreak),
		"longest_streak":         strconv.Itoa(p.LongestStreak),
		"total_strength_days":    strconv.Itoa(p.TotalStrengthDays),
		"total_cardio_days":      strconv.Itoa(p.TotalCardioDays),
		"consecutive_mixed_days": strconv.Itoa(p.ConsecutiveMixedDays),
		"level":                  strconv.Itoa(p.Level),
		"xp":                     strconv.FormatInt(p.XP, 10),
		"level_floor":            strconv.FormatInt(p.LevelFloor, 10),
		"level_ceiling":          strconv.FormatInt(p.LevelCeiling, 10),
		"coins":                  strconv.FormatInt(p.Coins, 10),
		"last_activity_type":     string(p.LastActivityType),
	}
	if !p.LastActivityAt.IsZero() {
		pairs["last_activity_at"] = strconv.FormatInt(p.LastActivityAt.Unix(), 10)
	}
	for k, v := range pairs {
		if err := d.setState(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

// ─── Achievements ───────────────────────────────────────────────────────────

// UnlockAchievement records an unlock. Returns false if already
// unlocked (append-only, idempotent).
func (d *DB) UnlockAchievement(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievements (id, unlocked_at) VALUES (?, ?)`,
		id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// UnlockedAchievements returns all recorded unlocks, newest first.
func (d *DB) UnlockedAchievements() ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.Query(
		`SELECT id, unlocked_at FROM achievements ORDER BY unlocked_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocked []domain.UnlockedAchievement
	for rows.Next() {
		var u domain.UnlockedAchievement
		var ts int64
		if err := rows.Scan(&u.ID, &ts); err != nil {
			return nil, err
		}
		u.UnlockedAt = time.Unix(ts, 0).UTC()
		unlocked = append(unlocked, u)
	}
	return unlocked, rows.Err()
}

// ─── Idempotency Ledger ─────────────────────────────────────────────────────

// MarkSourceProcessed appends an external source ID to the ledger.
func (d *DB) MarkSourceProcessed(id string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO processed_sources (source_id, processed_at) VALUES (?, ?)`,
		id, at.Unix(),
	)
	return err
}

// ProcessedSources returns every source ID ever processed.
func (d *DB) ProcessedSources() (map[string]bool, error) {
	rows, err := d.db.Query(`SELECT source_id FROM processed_sources`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seen[id] = true
	}
	return seen, rows.Err()
}

// ─── Activity Journal ───────────────────────────────────────────────────────

// RecordActivityDay journals an accepted activity day. The in_app flag
// is sticky: once a day has an in-app workout it stays marked.
func (d *DB) RecordActivityDay(dayKey string, activity domain.ActivityType, inApp bool) error {
	_, err := d.db.Exec(
		`INSERT INTO activity_days (day, activity, in_app) VALUES (?, ?, ?)
		 ON CONFLICT(day, activity) DO UPDATE SET in_app = in_app OR excluded.in_app`,
		dayKey, string(activity), inApp,
	)
	return err
}

// ActivityDays rebuilds the per-day sets: strength days, cardio days,
// and days carrying an in-app strength workout.
func (d *DB) ActivityDays() (strength, cardio, inAppWorkout map[string]bool, err error) {
	rows, err := d.db.Query(`SELECT day, activity, in_app FROM activity_days`)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rows.Close()

	strength = make(map[string]bool)
	cardio = make(map[string]bool)
	inAppWorkout = make(map[string]bool)
	for rows.Next() {
		var day, activity string
		var inApp bool
		if err := rows.Scan(&day, &activity, &inApp); err != nil {
			return nil, nil, nil, err
		}
		switch domain.ActivityType(activity) {
		case domain.ActivityStrength:
			strength[day] = true
		case domain.ActivityCardio:
			cardio[day] = true
		case domain.ActivityBoth:
			strength[day] = true
			cardio[day] = true
		}
		if inApp {
			inAppWorkout[day] = true
		}
	}
	return strength, cardio, inAppWorkout, rows.Err()
}
