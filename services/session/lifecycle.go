package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	sessionRepo "mentorhub/database/repository/session"
	"mentorhub/metrics"
	"mentorhub/models"
	"mentorhub/utils"
)

// JoinSession moves a BOOKED session to JOINED, stamping joined_at. Any
// other current state fails with ErrInvalidTransition; a concurrent
// transition that wins the race is reported the same way, never overwritten.
func (s *DefaultSessionService) JoinSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.transition(ctx, sessionID, []models.SessionStatus{models.StatusBooked}, models.StatusJoined)
	if err != nil {
		return nil, err
	}
	metrics.SessionsJoined.Inc()
	utils.GetLogger().Info("session joined", zap.String("sessionID", sess.ID))
	return sess, nil
}

// EndSession moves a JOINED or IN_PROGRESS session to COMPLETED, stamping
// ended_at, then enqueues summary generation. The enqueue is fire-and-forget:
// the transition has already committed, so a dispatch failure is logged and
// the completed session is still returned.
func (s *DefaultSessionService) EndSession(ctx context.Context, sessionID string) (*models.Session, error) {
	logger := utils.GetLogger()

	from := []models.SessionStatus{models.StatusJoined, models.StatusInProgress}
	sess, err := s.transition(ctx, sessionID, from, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	metrics.SessionsCompleted.Inc()
	logger.Info("session completed", zap.String("sessionID", sess.ID))

	if err := s.Dispatcher.EnqueueSummary(ctx, sess.ID); err != nil {
		metrics.SummaryEnqueueFailures.Inc()
		logger.Error("failed to enqueue summary generation",
			zap.String("sessionID", sess.ID), zap.Error(err))
	} else {
		metrics.SummaryJobsEnqueued.Inc()
	}
	return sess, nil
}

// transition runs the status-guarded update and classifies a miss as either
// a missing session or an illegal transition.
func (s *DefaultSessionService) transition(ctx context.Context, sessionID string, from []models.SessionStatus, to models.SessionStatus) (*models.Session, error) {
	sess, err := s.Repo.Transition(ctx, sessionID, from, to, time.Now().UTC())
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, sessionRepo.ErrNotFound) {
		return nil, err
	}
	if _, getErr := s.Repo.GetByID(ctx, sessionID); getErr != nil {
		if errors.Is(getErr, sessionRepo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, getErr
	}
	metrics.InvalidTransitions.Inc()
	return nil, ErrInvalidTransition
}
