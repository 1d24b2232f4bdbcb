package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRunBeforeSendTime(t *testing.T) {
	s := New(21, 0, time.UTC, time.Minute)

	now := time.Date(2026, 8, 27, 9, 15, 0, 0, time.UTC)
	next := s.NextRun(now)

	assert.Equal(t, time.Date(2026, 8, 27, 21, 0, 0, 0, time.UTC), next)
}

func TestNextRunAfterSendTime(t *testing.T) {
	s := New(21, 0, time.UTC, time.Minute)

	now := time.Date(2026, 8, 27, 22, 30, 0, 0, time.UTC)
	next := s.NextRun(now)

	assert.Equal(t, time.Date(2026, 8, 28, 21, 0, 0, 0, time.UTC), next)
}

func TestNextRunAtExactSendTime(t *testing.T) {
	s := New(21, 0, time.UTC, time.Minute)

	// The instant itself belongs to today's already-fired trigger; the next
	// run is tomorrow. This is what keeps the trigger at once per day.
	now := time.Date(2026, 8, 27, 21, 0, 0, 0, time.UTC)
	next := s.NextRun(now)

	assert.Equal(t, time.Date(2026, 8, 28, 21, 0, 0, 0, time.UTC), next)
}

func TestNextRunIsAlwaysInTheFuture(t *testing.T) {
	s := New(6, 30, time.UTC, time.Minute)

	for hour := 0; hour < 24; hour++ {
		now := time.Date(2026, 8, 27, hour, 0, 0, 0, time.UTC)
		next := s.NextRun(now)
		assert.True(t, next.After(now), "next run %v must be after now %v", next, now)
		assert.LessOrEqual(t, next.Sub(now), 24*time.Hour)
	}
}

func TestNextRunOncePerDay(t *testing.T) {
	s := New(21, 0, time.UTC, time.Minute)

	// Sampling every minute of a day, every computed trigger instant is the
	// same single slot for that day.
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	triggers := make(map[time.Time]struct{})
	for m := 0; m < 21*60; m++ {
		next := s.NextRun(day.Add(time.Duration(m) * time.Minute))
		triggers[next] = struct{}{}
	}
	assert.Len(t, triggers, 1)
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "3h 42m", FormatRemaining(3*time.Hour+42*time.Minute))
	assert.Equal(t, "0h 0m", FormatRemaining(30*time.Second))
	assert.Equal(t, "0h 0m", FormatRemaining(-time.Minute))
	assert.Equal(t, "26h 5m", FormatRemaining(26*time.Hour+5*time.Minute))
}
