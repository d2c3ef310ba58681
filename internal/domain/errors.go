package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict signals a uniqueness violation. The sync path treats it as
	// "already imported" so racing passes cannot double-import an order.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput covers malformed caller input on the HTTP surface.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration means required upstream credentials are missing.
	// A sync pass fails fast on this instead of attempting partial work.
	ErrConfiguration = errors.New("upstream credentials not configured")
	// ErrSourceUnavailable wraps transport/HTTP failures against the order
	// source. Sub-fetch failures are recovered locally; the orchestrator only
	// aborts when the initial order listing itself is unavailable.
	ErrSourceUnavailable = errors.New("order source unavailable")
	// ErrSyncInProgress is returned when another sync pass holds the
	// single-flight lock.
	ErrSyncInProgress = errors.New("sync already in progress")
)
