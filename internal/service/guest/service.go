package guest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid guest session")

// Service issues short-lived guest sessions for shoppers who have not signed
// in. A guest session only anchors a cart; it carries no identity.
type Service struct {
	sessions *sessionRegistry
	ttl      time.Duration
}

func New(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{
		sessions: newSessionRegistry(),
		ttl:      ttl,
	}
}

// Issue creates a new guest session and returns its id.
func (s *Service) Issue(ctx context.Context) (string, error) {
	id := uuid.NewString()
	s.sessions.add(id, s.ttl)
	return id, nil
}

// Lookup validates a guest session id. Touching a live session extends it.
func (s *Service) Lookup(ctx context.Context, sessionID string) error {
	if !s.sessions.touch(sessionID, s.ttl) {
		return ErrInvalidSession
	}
	return nil
}

// Drop discards a guest session, typically after its cart migrated to a
// signed-in customer.
func (s *Service) Drop(ctx context.Context, sessionID string) {
	s.sessions.remove(sessionID)
}

// TTLSeconds exposes the session lifetime in seconds.
func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
