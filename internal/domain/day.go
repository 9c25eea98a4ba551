package domain

import "time"

// Streak arithmetic works on calendar days in the user's local day
// boundary; time-of-day never matters. Days are normalized through
// their Y/M/D components so DST shifts cannot produce 23- or 25-hour
// "days".

// DayOf returns t's calendar day at midnight UTC, keyed by the
// year/month/day t has in its own location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative
// when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}

// DayKey formats t's calendar day as "2006-01-02" for per-day ledgers.
func DayKey(t time.Time) string {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}
