package domain

import (
	"testing"
	"time"
)

func TestNextFollowUpDue_Cadence(t *testing.T) {
	sentAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	wantDelays := []time.Duration{24 * time.Hour, 72 * time.Hour, 7 * 24 * time.Hour}

	req := &ReviewRequest{}
	for i, delay := range wantDelays {
		req.FollowUpCount = i
		next, ok := req.NextFollowUpDue(sentAt)
		if !ok {
			t.Fatalf("follow-up %d should still be available", i)
		}
		if want := sentAt.Add(delay); !next.Equal(want) {
			t.Fatalf("follow-up %d due %v, got %v", i, want, next)
		}
	}

	req.FollowUpCount = MaxFollowUps
	if _, ok := req.NextFollowUpDue(sentAt); ok {
		t.Fatalf("budget of %d follow-ups must exhaust the schedule", MaxFollowUps)
	}
}
