package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	sessionRepo "mentorhub/database/repository/session"
	userRepo "mentorhub/database/repository/user"
	"mentorhub/models"
)

// memSessionRepo is an in-memory SessionRepository. WithTransaction holds a
// single mutex, which models the serialized-per-expert transaction scope,
// and restores a snapshot on error to model rollback.
type memSessionRepo struct {
	txMu     sync.Mutex
	mu       sync.Mutex
	sessions map[string]*models.Session

	// transientFailures makes the next N transactions fail with a
	// retryable write conflict before any work happens.
	transientFailures int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*models.Session)}
}

func transientErr() error {
	return mongo.CommandError{Code: 112, Name: "WriteConflict", Labels: []string{"TransientTransactionError"}}
}

func (r *memSessionRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	if r.transientFailures > 0 {
		r.transientFailures--
		return transientErr()
	}

	snapshot := r.snapshot()
	if err := fn(ctx); err != nil {
		r.restore(snapshot)
		return err
	}
	return nil
}

func (r *memSessionRepo) snapshot() map[string]*models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*models.Session, len(r.sessions))
	for id, s := range r.sessions {
		copied := *s
		snap[id] = &copied
	}
	return snap
}

func (r *memSessionRepo) restore(snap map[string]*models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = snap
}

func (r *memSessionRepo) LockExpert(ctx context.Context, expertID string) error {
	return nil // txMu already serializes transactions
}

func (r *memSessionRepo) FindBookedSlot(ctx context.Context, expertID, studentID string, start, end time.Time) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ExpertID == expertID && s.StudentID == studentID &&
			s.StartAt.Equal(start) && s.EndAt.Equal(end) && s.Status == models.StatusBooked {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) HasActiveOverlap(ctx context.Context, expertID, excludeStudentID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rng := models.TimeRange{Start: start, End: end}
	for _, s := range r.sessions {
		if s.ExpertID != expertID || s.StudentID == excludeStudentID || !s.IsActive() {
			continue
		}
		if rng.Overlaps(models.TimeRange{Start: s.StartAt, End: s.EndAt}) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) Transition(ctx context.Context, id string, from []models.SessionStatus, to models.SessionStatus, at time.Time) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrNotFound
	}
	allowed := false
	for _, st := range from {
		if s.Status == st {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, sessionRepo.ErrNotFound
	}
	s.Status = to
	s.UpdatedAt = time.Now().UTC()
	switch to {
	case models.StatusJoined:
		stamp := at
		s.JoinedAt = &stamp
	case models.StatusCompleted:
		stamp := at
		s.EndedAt = &stamp
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) SetSummary(ctx context.Context, id, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrNotFound
	}
	s.Summary = summary
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	experts  map[string]*models.Expert
	students map[string]*models.Student
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		experts:  make(map[string]*models.Expert),
		students: make(map[string]*models.Student),
	}
}

func (r *memUserRepo) addExpert(id, name string) {
	r.experts[id] = &models.Expert{ID: id, Name: name, Active: true}
}

func (r *memUserRepo) addStudent(id, name string) {
	r.students[id] = &models.Student{ID: id, Name: name, Level: "beginner", Active: true}
}

func (r *memUserRepo) GetExpertByID(ctx context.Context, id string) (*models.Expert, error) {
	e, ok := r.experts[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return e, nil
}

func (r *memUserRepo) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return s, nil
}

// recordingDispatcher captures enqueued session IDs.
type recordingDispatcher struct {
	mu       sync.Mutex
	enqueued []string
	err      error
}

func (d *recordingDispatcher) EnqueueSummary(ctx context.Context, sessionID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.enqueued = append(d.enqueued, sessionID)
	return nil
}

var errQueueDown = errors.New("queue unavailable")
