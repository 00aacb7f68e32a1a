package session

import (
	"context"
	"time"
)

// hasConflict reports whether the expert has an active session (BOOKED,
// JOINED or IN_PROGRESS) strictly intersecting [start, end). Sessions
// belonging to the requesting student are excluded: a student re-booking a
// range that overlaps their own existing booking is allowed, so idempotent
// retries never collide with the record they created.
func (s *DefaultSessionService) hasConflict(ctx context.Context, expertID, studentID string, start, end time.Time) (bool, error) {
	return s.Repo.HasActiveOverlap(ctx, expertID, studentID, start, end)
}
