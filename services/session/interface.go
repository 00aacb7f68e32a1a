package session

import (
	"context"
	"time"

	sessionRepo "mentorhub/database/repository/session"
	userRepo "mentorhub/database/repository/user"
	"mentorhub/models"
)

// SessionService defines the booking and lifecycle operations exposed to
// the API layer.
type SessionService interface {
	// BookSession creates a session or idempotently returns the existing
	// one for an identical request. The bool reports whether a new session
	// was created.
	BookSession(ctx context.Context, expertID, studentID string, start, end time.Time) (*models.Session, bool, error)
	// JoinSession moves a BOOKED session to JOINED.
	JoinSession(ctx context.Context, sessionID string) (*models.Session, error)
	// EndSession moves a JOINED or IN_PROGRESS session to COMPLETED and
	// enqueues summary generation.
	EndSession(ctx context.Context, sessionID string) (*models.Session, error)
	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
}

// SummaryDispatcher is the boundary to the asynchronous summary worker.
// Enqueue is fire-and-forget: the worker owns retries and eventually writes
// the summary back through the store.
type SummaryDispatcher interface {
	EnqueueSummary(ctx context.Context, sessionID string) error
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Repo       sessionRepo.SessionRepository
	Users      userRepo.UserRepository
	Dispatcher SummaryDispatcher
	// MaxRetries bounds how often a booking transaction is re-run after a
	// transient store conflict. Zero means no retries.
	MaxRetries uint64
}
