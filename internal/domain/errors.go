package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
// The engine itself has no fatal paths: rejected events are signaled by
// a nil summary, never an error. These sentinels cover the boundaries.

var (
	// ErrInvalidEvent marks events missing required fields (kind, date).
	ErrInvalidEvent = errors.New("invalid event")

	// ErrStoreUnavailable indicates the persistence boundary could not
	// be reached at startup. Runtime save failures are logged, not raised.
	ErrStoreUnavailable = errors.New("progress store unavailable")
)
