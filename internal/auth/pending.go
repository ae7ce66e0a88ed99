package auth

import (
	"sync"
	"time"
)

// PendingLogin is one in-flight OAuth negotiation: the client registration
// obtained from the instance in phase one, alive only until the callback
// consumes it or it expires.
type PendingLogin struct {
	Instance     string
	ClientID     string
	ClientSecret string
	createdAt    time.Time
}

// PendingStore keeps in-flight negotiations keyed by the opaque state value
// that travels through the authorization redirect. Entries are single use and
// expire after the configured TTL; expired entries are swept on every access.
type PendingStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]PendingLogin
}

func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]PendingLogin),
	}
}

func (s *PendingStore) Put(state string, p PendingLogin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	p.createdAt = s.now()
	s.entries[state] = p
}

// Consume removes and returns the negotiation for state. It returns
// ErrSessionState when the state is unknown, already used, or expired.
func (s *PendingStore) Consume(state string) (PendingLogin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	p, ok := s.entries[state]
	if !ok {
		return PendingLogin{}, ErrSessionState
	}
	delete(s.entries, state)
	return p, nil
}

func (s *PendingStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	for state, p := range s.entries {
		if p.createdAt.Before(cutoff) {
			delete(s.entries, state)
		}
	}
}
