package errs

import "errors"

// Machine-readable error kinds surfaced across the usecase layers.
// Handlers map these to HTTP statuses; nothing below is retried
// automatically.
var (
	// Validation errors
	ErrValidation         = errors.New("validation error")
	ErrUnknownBookingType = errors.New("unknown booking type")

	// Lookup errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrResourceNotFound = errors.New("resource not found")

	// Capacity errors
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// Ownership / lifecycle errors
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrAlreadyConfirmed       = errors.New("payment already confirmed")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrDuplicateRequest       = errors.New("duplicate request")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
