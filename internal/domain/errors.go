package domain

import "errors"

var (
	// ErrNotFound is returned by store lookups for missing entities.
	ErrNotFound = errors.New("entity not found")

	// ErrPolicyMismatch rejects a manual reorder while the active
	// ordering policy is not OrderByManual. The caller surfaces it as
	// a user-facing rejection; it must never silently coerce the
	// policy.
	ErrPolicyMismatch = errors.New("manual reorder requires orderId ordering policy")

	// ErrConflict signals that a bulk order assignment referenced ids
	// that no longer match the scope's current rows. Retryable: the
	// caller should re-fetch and resubmit.
	ErrConflict = errors.New("collection changed concurrently, re-fetch and retry")
)
