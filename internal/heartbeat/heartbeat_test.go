package heartbeat

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestIsOnlineThresholdBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSeen *time.Time
		want     bool
	}{
		{"just now", timePtr(now), true},
		{"one second under threshold", timePtr(now.Add(-599 * time.Second)), true},
		{"exactly at threshold", timePtr(now.Add(-600 * time.Second)), false},
		{"one second over threshold", timePtr(now.Add(-601 * time.Second)), false},
		{"never seen", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOnline(tt.lastSeen, now))
		})
	}
}

func TestIsOnlineWithFutureTimestamp(t *testing.T) {
	// A clock-skewed future heartbeat still counts as online.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Minute)
	assert.True(t, IsOnline(&future, now))
}

func TestLastSeenLabel(t *testing.T) {
	assert.Equal(t, "データなし", LastSeenLabel(nil))

	seen := time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "06/01 09:05", LastSeenLabel(&seen))
}

func TestTrackerUsesInjectedClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	tracker := NewTracker(clock)

	seen := clock.Now().Add(-5 * time.Minute)
	assert.True(t, tracker.Online(&seen))

	clock.Advance(6 * time.Minute)
	assert.False(t, tracker.Online(&seen))
}

func timePtr(t time.Time) *time.Time { return &t }
