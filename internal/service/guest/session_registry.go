package guest

import (
	"sync"
	"time"
)

type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]time.Time),
	}
}

func (r *sessionRegistry) add(id string, ttl time.Duration) {
	r.mu.Lock()
	r.sessions[id] = time.Now().Add(ttl)
	r.mu.Unlock()
}

// touch reports whether the session is live and pushes its expiry forward.
func (r *sessionRegistry) touch(id string, ttl time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiresAt, ok := r.sessions[id]
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		delete(r.sessions, id)
		return false
	}
	r.sessions[id] = time.Now().Add(ttl)
	return true
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
