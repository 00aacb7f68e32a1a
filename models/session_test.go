package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_DurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	s := Session{StartAt: start, EndAt: start.Add(90 * time.Minute)}
	assert.Equal(t, 90, s.DurationMinutes())
}

func TestSession_DisplayName(t *testing.T) {
	start := time.Date(2026, 3, 11, 14, 5, 0, 0, time.UTC)
	s := Session{StartAt: start}
	assert.Equal(t, "- @ 2026-03-11 14:05 UTC", s.DisplayName())
}

func TestSession_IsActive(t *testing.T) {
	testCases := []struct {
		status SessionStatus
		active bool
	}{
		{StatusBooked, true},
		{StatusJoined, true},
		{StatusInProgress, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}
	for _, tc := range testCases {
		s := Session{Status: tc.status}
		assert.Equal(t, tc.active, s.IsActive(), "status %s", tc.status)
	}
}

func TestNewSessionResponse(t *testing.T) {
	start := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	s := &Session{ID: "abc", StartAt: start, EndAt: start.Add(time.Hour), Status: StatusBooked}

	resp := NewSessionResponse(s)
	assert.Equal(t, "abc", resp.ID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, s.DisplayName(), resp.SessionName)
}
