package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/briefly-app/briefly/internal/metrics"
)

// Registry keeps the live sessions. Sessions are created on demand, looked
// up per request, and swept after sitting idle longer than the TTL so the
// map cannot grow without bound.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*Session
	dailyLimit int
	ttl        time.Duration
	now        func() time.Time
}

// NewRegistry creates an empty registry. New sessions start with the given
// daily quota limit and are swept after ttl of inactivity.
func NewRegistry(dailyLimit int, ttl time.Duration) *Registry {
	return &Registry{
		sessions:   make(map[uuid.UUID]*Session),
		dailyLimit: dailyLimit,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Create registers a fresh session and returns it.
func (r *Registry) Create() *Session {
	s := newSession(r.dailyLimit, r.now)
	r.mu.Lock()
	r.sessions[s.ID] = s
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	r.mu.Unlock()
	return s
}

// Get returns the session with the given ID and refreshes its idle timer.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// Delete discards the session with the given ID.
func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	r.mu.Unlock()
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle longer than the TTL and returns how many
// were removed. A session whose latch is held is never swept mid-call
// because the in-flight request refreshed its idle timer on lookup.
func (r *Registry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					slog.Debug("swept idle sessions", "count", n)
				}
			}
		}
	}()
}
