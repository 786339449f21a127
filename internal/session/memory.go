package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-process session store. Sessions are
// lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Save stores a copy of sess and drops every session that has already
// expired, so sessions whose cookies never come back do not pile up.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	copied := *sess
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.sessions[sess.ID] = &copied
	return nil
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		_ = s.Delete(ctx, id)
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
