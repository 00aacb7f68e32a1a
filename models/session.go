package models

import (
	"fmt"
	"time"
)

// SessionStatus enumerates the lifecycle states of a mentoring session.
type SessionStatus string

const (
	StatusBooked     SessionStatus = "BOOKED"
	StatusJoined     SessionStatus = "JOINED"
	StatusInProgress SessionStatus = "IN_PROGRESS" // reserved for a future "session start" trigger
	StatusCompleted  SessionStatus = "COMPLETED"
	StatusCancelled  SessionStatus = "CANCELLED"
)

// ActiveStatuses are the states that occupy an expert's calendar for
// overlap purposes. COMPLETED and CANCELLED sessions never conflict.
var ActiveStatuses = []SessionStatus{StatusBooked, StatusJoined, StatusInProgress}

// Session represents a mentoring session between an expert and a student.
type Session struct {
	ID        string        `bson:"id" json:"id"`                                 // Unique session identifier (UUID)
	ExpertID  string        `bson:"expert_id" json:"expert_id"`                   // Expert who was booked
	StudentID string        `bson:"student_id" json:"student_id"`                 // Student who made the booking
	StartAt   time.Time     `bson:"start_at" json:"start_at"`                     // Scheduled start
	EndAt     time.Time     `bson:"end_at" json:"end_at"`                         // Scheduled end (exclusive)
	Status    SessionStatus `bson:"status" json:"status"`                         // Current lifecycle state
	JoinedAt  *time.Time    `bson:"joined_at,omitempty" json:"joined_at"`         // Set when the session is joined
	EndedAt   *time.Time    `bson:"ended_at,omitempty" json:"ended_at"`           // Set when the session completes
	Summary   string        `bson:"summary,omitempty" json:"summary"`             // Generated after completion; empty until then
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`                 // Timestamp when the session was booked
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`                 // Timestamp of the last mutation
}

// IsActive reports whether the session still occupies its time range.
func (s *Session) IsActive() bool {
	switch s.Status {
	case StatusBooked, StatusJoined, StatusInProgress:
		return true
	}
	return false
}

// DurationMinutes returns the scheduled length of the session in minutes.
func (s *Session) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt).Minutes())
}

// DisplayName returns the human-readable label used in summaries.
func (s *Session) DisplayName() string {
	return fmt.Sprintf("- @ %s", s.StartAt.UTC().Format("2006-01-02 15:04 UTC"))
}

// SessionResponse is the outward shape of a session, with the derived
// fields clients expect alongside the stored attributes.
type SessionResponse struct {
	Session
	DurationMinutes int    `json:"duration_minutes"`
	SessionName     string `json:"session_name"`
}

// NewSessionResponse builds the outward representation of a session.
func NewSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		Session:         *s,
		DurationMinutes: s.DurationMinutes(),
		SessionName:     s.DisplayName(),
	}
}
