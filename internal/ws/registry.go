// Package ws tracks open display push channels and fans out invalidation
// signals. Delivery is best-effort: no acknowledgement, no retry, no
// ordering guarantee across channels.
package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/rebounder/signage_backend/internal/metrics"
)

// ReloadSignal tells displays to re-poll their configuration now. The
// registry itself is content-agnostic and transports any string.
const ReloadSignal = "RELOAD"

// Channel is the write side of one connected display.
type Channel interface {
	Send(message string) error
}

// Registry is the process-wide set of open push channels. It is constructed
// once at startup and injected into handlers; all membership operations are
// safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	channels map[Channel]struct{}
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		channels: make(map[Channel]struct{}),
		log:      log,
	}
}

// Connect registers a channel; it is eligible for broadcasts immediately.
func (r *Registry) Connect(ch Channel) {
	r.mu.Lock()
	r.channels[ch] = struct{}{}
	n := len(r.channels)
	r.mu.Unlock()
	metrics.ActiveConnections.Set(float64(n))
	r.log.Info("display channel connected", zap.Int("active", n))
}

// Disconnect removes a channel if present. Removing an absent channel is a
// no-op.
func (r *Registry) Disconnect(ch Channel) {
	r.mu.Lock()
	_, present := r.channels[ch]
	delete(r.channels, ch)
	n := len(r.channels)
	r.mu.Unlock()
	if !present {
		return
	}
	metrics.ActiveConnections.Set(float64(n))
	r.log.Info("display channel disconnected", zap.Int("active", n))
}

// Count returns the number of registered channels.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels)
}

// Broadcast delivers message to every registered channel. The member set is
// snapshotted under the lock, then writes happen outside it, so concurrent
// Connect/Disconnect calls never block on slow sends. A failed send is
// logged and skipped; cleanup is left to the channel's own read loop.
func (r *Registry) Broadcast(message string) {
	r.mu.Lock()
	snapshot := make([]Channel, 0, len(r.channels))
	for ch := range r.channels {
		snapshot = append(snapshot, ch)
	}
	r.mu.Unlock()

	for _, ch := range snapshot {
		if err := ch.Send(message); err != nil {
			metrics.BroadcastSends.WithLabelValues("failed").Inc()
			r.log.Debug("broadcast send failed", zap.Error(err))
			continue
		}
		metrics.BroadcastSends.WithLabelValues("delivered").Inc()
	}
}

// NotifyChanged is the admin-side invalidation trigger: content changed,
// tell every display to re-poll.
func (r *Registry) NotifyChanged() {
	r.Broadcast(ReloadSignal)
}
