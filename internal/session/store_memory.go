package session

import (
	"sync"

	"github.com/clipbridge/clipbridge/internal/models"
)

// NewMemoryStore returns a Store backed by in-process state. Useful for tests
// and for one-shot invocations that must not touch the state directory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// MemoryStore implements Store without any durable medium.
type MemoryStore struct {
	mu      sync.RWMutex
	session models.Session
}

// Load returns a copy of the current session.
func (s *MemoryStore) Load() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Save replaces the entire session.
func (s *MemoryStore) Save(session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.User != nil {
		user := *session.User
		session.User = &user
	}
	s.session = session
	return nil
}

// Clear resets every field.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = models.Session{}
	return nil
}

// SaveToken overwrites only the bearer token.
func (s *MemoryStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = token
	return nil
}

// SaveUser overwrites only the user record.
func (s *MemoryStore) SaveUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.User = &user
	return nil
}

// SaveConnection stores the platform token and marks the account connected.
func (s *MemoryStore) SaveConnection(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.YouTubeToken = token
	s.session.YouTubeConnected = true
	return nil
}

// ClearAuth removes the token and user, leaving connection state alone.
func (s *MemoryStore) ClearAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = ""
	s.session.User = nil
	return nil
}

// ClearConnection removes the platform token and connected flag.
func (s *MemoryStore) ClearConnection() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.YouTubeToken = ""
	s.session.YouTubeConnected = false
	return nil
}

func (s *MemoryStore) copyLocked() models.Session {
	session := s.session
	if session.User != nil {
		user := *session.User
		session.User = &user
	}
	return session
}
