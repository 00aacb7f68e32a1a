package models

import (
	"errors"
	"time"
)

var (
	// ErrInvalidTimeRange indicates end <= start.
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	// ErrStartInPast indicates the range starts before the current time.
	ErrStartInPast = errors.New("start time cannot be in the past")
)

// TimeRange is the half-open interval [Start, End) a session occupies.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate checks the range against the given current time.
func (tr TimeRange) Validate(now time.Time) error {
	if !tr.End.After(tr.Start) {
		return ErrInvalidTimeRange
	}
	if tr.Start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

// Overlaps reports whether two half-open ranges intersect.
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.Start.Before(other.End) && tr.End.After(other.Start)
}
