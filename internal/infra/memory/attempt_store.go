package memory

import (
	"sync"
	"time"

	"quizmaster-service/internal/app"
)

// AttemptStore is an in-memory implementation of app.AttemptRepository.
// Abandoned attempts are swept lazily once they outlive the TTL; a TTL of
// zero keeps attempts until they are finished or explicitly deleted.
type AttemptStore struct {
	ttl      time.Duration
	clock    func() time.Time
	mu       sync.RWMutex
	attempts map[string]*app.Attempt
}

func NewAttemptStore(ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		ttl:      ttl,
		clock:    time.Now,
		attempts: make(map[string]*app.Attempt),
	}
}

func (s *AttemptStore) Put(attempt *app.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.attempts[attempt.ID()] = attempt
}

func (s *AttemptStore) Get(attemptID string) (*app.Attempt, bool) {
	s.mu.RLock()
	attempt, ok := s.attempts[attemptID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(attempt) {
		s.Delete(attemptID)
		return nil, false
	}
	return attempt, true
}

func (s *AttemptStore) Delete(attemptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, attemptID)
}

func (s *AttemptStore) expired(attempt *app.Attempt) bool {
	return s.ttl > 0 && s.clock().Sub(attempt.CreatedAt()) > s.ttl
}

func (s *AttemptStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, attempt := range s.attempts {
		if s.expired(attempt) {
			delete(s.attempts, id)
		}
	}
}
