package session

import "errors"

// Domain errors surfaced by the session service. Handlers match them with
// errors.Is to pick the outward status code. Time-range validation errors
// (models.ErrInvalidTimeRange, models.ErrStartInPast) are propagated from
// the models package unchanged.
var (
	// ErrBookingConflict indicates the expert already has an active session
	// overlapping the requested range, booked by a different student.
	ErrBookingConflict = errors.New("expert has overlapping sessions")

	// ErrInvalidTransition indicates a lifecycle operation was attempted
	// from a state that does not allow it.
	ErrInvalidTransition = errors.New("session cannot change state from its current status")

	// ErrExpertNotFound / ErrStudentNotFound / ErrSessionNotFound indicate
	// the referenced record does not exist.
	ErrExpertNotFound  = errors.New("expert not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrSessionNotFound = errors.New("session not found")

	// ErrStoreContention indicates the booking transaction kept colliding
	// with concurrent updates and exhausted its retries. Clients may retry.
	ErrStoreContention = errors.New("booking aborted after repeated store conflicts")
)
