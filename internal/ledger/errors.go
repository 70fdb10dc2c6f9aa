package ledger

import "errors"

var (
	// ErrAccountNotFound indicates an unknown account code or id.
	ErrAccountNotFound = errors.New("ledger: account not found")
	// ErrInvalidAmount indicates a malformed amount in an update payload.
	ErrInvalidAmount = errors.New("ledger: invalid amount")
	// ErrRecomputeFailed indicates the rollup recompute failed after the
	// field write already committed. The write stands; recompute is
	// idempotent and safe to re-trigger.
	ErrRecomputeFailed = errors.New("ledger: recompute failed")
)
