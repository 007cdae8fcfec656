// Package heartbeat derives display liveness from the last-seen timestamp
// recorded on each successful poll. No timer or poller runs here; status is
// always computed on demand.
package heartbeat

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// OfflineAfter is the staleness threshold: a display is offline once its
// last poll is this old or older.
const OfflineAfter = 600 * time.Second

const neverSeenLabel = "データなし"

// IsOnline reports whether a display with the given last-seen timestamp is
// considered online at now. A nil timestamp means the display was never
// seen, which is a valid offline state, not an error.
func IsOnline(lastSeen *time.Time, now time.Time) bool {
	if lastSeen == nil {
		return false
	}
	return now.Sub(*lastSeen) < OfflineAfter
}

// LastSeenLabel formats a last-seen timestamp for the dashboard.
func LastSeenLabel(lastSeen *time.Time) string {
	if lastSeen == nil {
		return neverSeenLabel
	}
	return lastSeen.Format("01/02 15:04")
}

// Tracker is the clock-injected form used by the dashboard boundary.
type Tracker struct {
	clock clockwork.Clock
}

func NewTracker(clock clockwork.Clock) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{clock: clock}
}

func (t *Tracker) Online(lastSeen *time.Time) bool {
	return IsOnline(lastSeen, t.clock.Now())
}
