package service

import "errors"

// Error taxonomy for billing operations. Every error is terminal for the
// current user action: it is surfaced to the caller and nothing is retried.
// Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrValidation means the request itself is unusable (missing month key,
	// unknown item type, empty selection)
	ErrValidation = errors.New("validation failed")

	// ErrCreation means the store rejected an insert; the whole operation is
	// aborted and nothing downstream of it ran
	ErrCreation = errors.New("create rejected by store")

	// ErrUpdate means the store rejected an update
	ErrUpdate = errors.New("update rejected by store")

	// ErrUpload means receipt storage rejected the file; no status transition
	// was applied
	ErrUpload = errors.New("receipt upload failed")

	// ErrLookup means a required fetch failed; reconciliation aborts, a prior
	// cycle write stays in place
	ErrLookup = errors.New("lookup failed")

	// ErrForbidden means the caller tried to touch a bill it does not own
	ErrForbidden = errors.New("bill does not belong to caller")

	// ErrInvalidTransition means the requested status change is not permitted
	// by the payment state machine
	ErrInvalidTransition = errors.New("invalid payment status transition")
)
