package sessionRepo

import (
	"context"
	"time"

	"mentorhub/models"
)

// SessionRepository defines persistence for mentoring session records.
// All methods honour a transaction scope carried in ctx by WithTransaction,
// so a create-or-get sequence can be observed atomically.
type SessionRepository interface {
	// WithTransaction runs fn inside a single atomic transaction. The ctx
	// passed to fn must be used for every repository call made within it.
	// Rollback is guaranteed on any error returned by fn.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// LockExpert serializes concurrent booking transactions for one expert.
	// Must be called inside WithTransaction; a concurrent transaction
	// holding the same lock causes a transient conflict on commit.
	LockExpert(ctx context.Context, expertID string) error

	// FindBookedSlot returns the BOOKED session matching the idempotency
	// key (expert, student, start, end), or nil when none exists.
	FindBookedSlot(ctx context.Context, expertID, studentID string, start, end time.Time) (*models.Session, error)

	// HasActiveOverlap reports whether the expert has an active session
	// intersecting [start, end), ignoring sessions of excludeStudentID.
	HasActiveOverlap(ctx context.Context, expertID, excludeStudentID string, start, end time.Time) (bool, error)

	// Create inserts a new session record.
	Create(ctx context.Context, session *models.Session) error

	// GetByID retrieves a session by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Session, error)

	// Transition atomically moves a session from one of the given states
	// to the target state, stamping joined_at or ended_at as appropriate.
	// Returns ErrNotFound when no session currently satisfies the filter,
	// which covers both a missing session and a lost state race.
	Transition(ctx context.Context, id string, from []models.SessionStatus, to models.SessionStatus, at time.Time) (*models.Session, error)

	// SetSummary stores the generated summary text for a session.
	SetSummary(ctx context.Context, id, summary string) error
}
