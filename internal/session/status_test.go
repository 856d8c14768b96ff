package session

import (
	"errors"
	"testing"
	"time"
)

func TestTransitionCreatedToActive(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sess := Session{Status: StatusCreated}

	if err := Transition(&sess, StatusActive, now); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if sess.Status != StatusActive {
		t.Fatalf("expected active, got %s", sess.Status)
	}
	if sess.StartTime == nil || !sess.StartTime.Equal(now) {
		t.Fatalf("expected start time stamped")
	}
}

func TestTransitionRestartKeepsStartTime(t *testing.T) {
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sess := Session{Status: StatusPaused, StartTime: &start}

	if err := Transition(&sess, StatusActive, start.Add(10*time.Minute)); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if !sess.StartTime.Equal(start) {
		t.Fatalf("start time must not move on resume")
	}
}

func TestTransitionPauseResumeAccumulates(t *testing.T) {
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sess := Session{Status: StatusActive, StartTime: &start}

	if err := Transition(&sess, StatusPaused, start.Add(10*time.Minute)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if sess.PausedAt == nil {
		t.Fatalf("expected paused_at stamped")
	}

	if err := Transition(&sess, StatusActive, start.Add(15*time.Minute)); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if sess.PausedAt != nil {
		t.Fatalf("expected paused_at cleared")
	}
	if sess.PausedDurationSeconds != 300 {
		t.Fatalf("expected 300s paused, got %d", sess.PausedDurationSeconds)
	}
}

func TestTransitionCompleteExcludesPausedTime(t *testing.T) {
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sess := Session{Status: StatusActive, StartTime: &start}

	// 10 min active, 5 min paused, 10 min active, complete.
	if err := Transition(&sess, StatusPaused, start.Add(10*time.Minute)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := Transition(&sess, StatusActive, start.Add(15*time.Minute)); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := Transition(&sess, StatusCompleted, start.Add(25*time.Minute)); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if sess.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", sess.Status)
	}
	if sess.EndTime == nil {
		t.Fatalf("expected end time stamped")
	}
	if sess.DurationSeconds == nil || *sess.DurationSeconds != 1200 {
		t.Fatalf("expected 1200s active duration, got %v", sess.DurationSeconds)
	}
}

func TestTransitionCompleteFromPausedDrainsPause(t *testing.T) {
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sess := Session{Status: StatusActive, StartTime: &start}

	if err := Transition(&sess, StatusPaused, start.Add(10*time.Minute)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := Transition(&sess, StatusCompleted, start.Add(30*time.Minute)); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if sess.PausedDurationSeconds != 1200 {
		t.Fatalf("expected 1200s paused, got %d", sess.PausedDurationSeconds)
	}
	if sess.DurationSeconds == nil || *sess.DurationSeconds != 600 {
		t.Fatalf("expected 600s active duration, got %v", sess.DurationSeconds)
	}
}

func TestTransitionSameStateIsNoop(t *testing.T) {
	now := time.Now()
	for _, st := range []Status{StatusCreated, StatusActive, StatusPaused, StatusCompleted} {
		sess := Session{Status: st}
		if err := Transition(&sess, st, now); err != nil {
			t.Fatalf("%s -> %s should be a no-op, got %v", st, st, err)
		}
		if sess.Status != st {
			t.Fatalf("state changed on no-op")
		}
		if sess.StartTime != nil || sess.EndTime != nil {
			t.Fatalf("no-op must not touch timestamps")
		}
	}
}

func TestTransitionTable(t *testing.T) {
	now := time.Now()
	allowed := map[[2]Status]bool{
		{StatusCreated, StatusActive}:   true,
		{StatusPaused, StatusActive}:    true,
		{StatusActive, StatusPaused}:    true,
		{StatusActive, StatusCompleted}: true,
		{StatusPaused, StatusCompleted}: true,
	}
	states := []Status{StatusCreated, StatusActive, StatusPaused, StatusCompleted}

	for _, from := range states {
		for _, to := range states {
			if from == to {
				continue
			}
			start := now.Add(-time.Hour)
			sess := Session{Status: from, StartTime: &start}
			err := Transition(&sess, to, now)
			if allowed[[2]Status{from, to}] {
				if err != nil {
					t.Fatalf("%s -> %s should be allowed: %v", from, to, err)
				}
				if sess.Status != to {
					t.Fatalf("%s -> %s did not land on target", from, to)
				}
			} else {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("%s -> %s should fail with ErrInvalidTransition, got %v", from, to, err)
				}
				if sess.Status != from {
					t.Fatalf("%s -> %s mutated state on failure", from, to)
				}
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	if st, ok := ParseStatus("active"); !ok || st != StatusActive {
		t.Fatalf("expected active to parse")
	}
	if _, ok := ParseStatus("sprinting"); ok {
		t.Fatalf("expected unknown status to fail")
	}
}
