package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub/models"
)

func bookTestSession(t *testing.T, svc *DefaultSessionService) *models.Session {
	t.Helper()
	start, end := tomorrowSlot(14, 0, 60)
	sess, created, err := svc.BookSession(context.Background(), "expert-1", "student-1", start, end)
	require.NoError(t, err)
	require.True(t, created)
	return sess
}

func TestJoinSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	booked := bookTestSession(t, svc)

	joined, err := svc.JoinSession(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusJoined, joined.Status)
	require.NotNil(t, joined.JoinedAt)

	// Joining again is an illegal transition, not a silent no-op.
	_, err = svc.JoinSession(ctx, booked.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestJoinSession_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.JoinSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEndSession_FromJoined(t *testing.T) {
	svc, _, _, dispatcher := newTestService(t)
	ctx := context.Background()
	booked := bookTestSession(t, svc)

	_, err := svc.JoinSession(ctx, booked.ID)
	require.NoError(t, err)

	ended, err := svc.EndSession(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, ended.Status)
	require.NotNil(t, ended.EndedAt)

	require.Len(t, dispatcher.enqueued, 1, "exactly one summary job must be enqueued")
	assert.Equal(t, booked.ID, dispatcher.enqueued[0])
}

func TestEndSession_FromBookedFails(t *testing.T) {
	svc, _, _, dispatcher := newTestService(t)
	booked := bookTestSession(t, svc)

	_, err := svc.EndSession(context.Background(), booked.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, dispatcher.enqueued, "no summary job for a failed transition")
}

func TestEndSession_DispatchFailureDoesNotFailTheCall(t *testing.T) {
	svc, repo, _, dispatcher := newTestService(t)
	ctx := context.Background()
	booked := bookTestSession(t, svc)
	_, err := svc.JoinSession(ctx, booked.ID)
	require.NoError(t, err)

	dispatcher.err = errQueueDown

	ended, err := svc.EndSession(ctx, booked.ID)
	require.NoError(t, err, "enqueue failure must not surface: the transition already committed")
	assert.Equal(t, models.StatusCompleted, ended.Status)

	stored, err := repo.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestLifecycle_StatusIsMonotonic(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	booked := bookTestSession(t, svc)

	_, err := svc.JoinSession(ctx, booked.ID)
	require.NoError(t, err)
	_, err = svc.EndSession(ctx, booked.ID)
	require.NoError(t, err)

	// No operation may move the status backward from COMPLETED.
	_, err = svc.JoinSession(ctx, booked.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.EndSession(ctx, booked.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	final, err := svc.GetSession(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, final.Status)
}
