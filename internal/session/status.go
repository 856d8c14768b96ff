package session

import (
	"fmt"
	"time"
)

// Transition applies a requested status change to s at time now. Requesting
// the current status is a no-op. Anything outside the allowed edges fails
// with ErrInvalidTransition and leaves s unchanged.
//
// Allowed edges:
//
//	created -> active       stamps start_time on first start
//	paused  -> active       drains elapsed pause into paused_duration_seconds
//	active  -> paused       stamps paused_at
//	active  -> completed    stamps end_time, computes duration
//	paused  -> completed    drains pause, then completes
//
// completed is terminal.
func Transition(s *Session, target Status, now time.Time) error {
	if s.Status == target {
		return nil
	}

	switch {
	case s.Status == StatusCreated && target == StatusActive:
		if s.StartTime == nil {
			t := now
			s.StartTime = &t
		}
		s.Status = StatusActive

	case s.Status == StatusPaused && target == StatusActive:
		drainPause(s, now)
		s.Status = StatusActive

	case s.Status == StatusActive && target == StatusPaused:
		t := now
		s.PausedAt = &t
		s.Status = StatusPaused

	case (s.Status == StatusActive || s.Status == StatusPaused) && target == StatusCompleted:
		drainPause(s, now)
		t := now
		s.EndTime = &t
		if s.StartTime != nil {
			d := int(now.Sub(*s.StartTime).Seconds()) - s.PausedDurationSeconds
			s.DurationSeconds = &d
		}
		s.Status = StatusCompleted

	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, target)
	}
	return nil
}

// drainPause folds the elapsed pause interval into the accumulated total,
// so a completion reached from paused still excludes paused time.
func drainPause(s *Session, now time.Time) {
	if s.PausedAt == nil {
		return
	}
	s.PausedDurationSeconds += int(now.Sub(*s.PausedAt).Seconds())
	s.PausedAt = nil
}
