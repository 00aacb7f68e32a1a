package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	sessionRepo "mentorhub/database/repository/session"
	userRepo "mentorhub/database/repository/user"
	"mentorhub/metrics"
	"mentorhub/models"
	"mentorhub/utils"
)

// BookSession creates a session for the given expert, student and time
// range, or returns the existing one when the identical request was already
// booked. The lookup, overlap check and insert run inside one transaction
// serialized per expert; transient conflicts with concurrent bookings are
// retried up to MaxRetries before surfacing as ErrStoreContention.
func (s *DefaultSessionService) BookSession(ctx context.Context, expertID, studentID string, start, end time.Time) (*models.Session, bool, error) {
	logger := utils.GetLogger()

	rng := models.TimeRange{Start: start, End: end}
	if err := rng.Validate(time.Now()); err != nil {
		return nil, false, err
	}

	var (
		result  *models.Session
		created bool
	)

	operation := func() error {
		result, created = nil, false

		err := s.Repo.WithTransaction(ctx, func(txCtx context.Context) error {
			if _, err := s.Users.GetExpertByID(txCtx, expertID); err != nil {
				if errors.Is(err, userRepo.ErrNotFound) {
					return ErrExpertNotFound
				}
				return err
			}
			if _, err := s.Users.GetStudentByID(txCtx, studentID); err != nil {
				if errors.Is(err, userRepo.ErrNotFound) {
					return ErrStudentNotFound
				}
				return err
			}

			// Serialize concurrent bookings for this expert.
			if err := s.Repo.LockExpert(txCtx, expertID); err != nil {
				return err
			}

			// Idempotency short-circuit: an identical BOOKED request from
			// the same student is returned as-is, no further checks.
			existing, err := s.Repo.FindBookedSlot(txCtx, expertID, studentID, start, end)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}

			conflict, err := s.hasConflict(txCtx, expertID, studentID, start, end)
			if err != nil {
				return err
			}
			if conflict {
				return ErrBookingConflict
			}

			now := time.Now().UTC()
			newSession := &models.Session{
				ID:        uuid.New().String(),
				ExpertID:  expertID,
				StudentID: studentID,
				StartAt:   start,
				EndAt:     end,
				Status:    models.StatusBooked,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.Repo.Create(txCtx, newSession); err != nil {
				return err
			}
			result = newSession
			created = true
			return nil
		})
		if err != nil {
			if sessionRepo.IsTransient(err) {
				metrics.BookingRetries.Inc()
				logger.Debug("booking transaction hit transient conflict, retrying",
					zap.String("expertID", expertID), zap.Error(err))
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.MaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if sessionRepo.IsTransient(err) {
			logger.Warn("booking gave up after repeated store conflicts",
				zap.String("expertID", expertID), zap.Error(err))
			return nil, false, fmt.Errorf("%w: %v", ErrStoreContention, err)
		}
		if errors.Is(err, ErrBookingConflict) {
			metrics.BookingConflicts.Inc()
		}
		return nil, false, err
	}

	if created {
		metrics.BookingsCreated.Inc()
		logger.Info("session booked",
			zap.String("sessionID", result.ID),
			zap.String("expertID", expertID),
			zap.String("studentID", studentID))
	} else {
		metrics.BookingsIdempotent.Inc()
		logger.Debug("identical booking request, returning existing session",
			zap.String("sessionID", result.ID))
	}
	return result, created, nil
}

// GetSession retrieves a session by ID.
func (s *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.Repo.GetByID(ctx, sessionID)
	if errors.Is(err, sessionRepo.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}
