// Package session is the server-side, per-browser-visit key/value store.
// Entries are addressed by an opaque session ID carried in a cookie and
// vanish after a fixed idle period.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultIdleTimeout = 30 * time.Minute

type entry struct {
	values   map[string]string
	lastSeen time.Time
}

// Store holds the per-session slots. Reads and writes both count as
// activity and push the idle deadline out.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*entry
	idleTimeout time.Duration
	nowFunc     func() time.Time
}

type StoreOption func(*Store)

// WithIdleTimeout overrides the default 30-minute idle eviction.
func WithIdleTimeout(timeout time.Duration) StoreOption {
	return func(s *Store) {
		s.idleTimeout = timeout
	}
}

// WithNowFunc sets the clock (primarily for testing)
func WithNowFunc(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFunc = now
	}
}

func NewStore(options ...StoreOption) *Store {
	s := &Store{
		sessions:    make(map[string]*entry),
		idleTimeout: defaultIdleTimeout,
		nowFunc:     time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// NewID returns a fresh opaque session identifier.
func NewID() string {
	return uuid.New().String()
}

// Set writes a named value, creating the session on first write.
func (s *Store) Set(sessionID, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok || s.expired(e) {
		e = &entry{values: make(map[string]string)}
		s.sessions[sessionID] = e
	}
	e.values[key] = value
	e.lastSeen = s.nowFunc()
}

// Get returns the named value, or "" and false when the slot is empty or
// the session has idled out.
func (s *Store) Get(sessionID, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return "", false
	}
	if s.expired(e) {
		delete(s.sessions, sessionID)
		return "", false
	}
	e.lastSeen = s.nowFunc()
	value, ok := e.values[key]
	return value, ok
}

// Remove deletes a single named value.
func (s *Store) Remove(sessionID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sessionID]; ok {
		delete(e.values, key)
	}
}

// Clear drops the whole session.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

// Sweep evicts every idled-out session. Callers run it periodically.
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, id)
		}
	}
}

// StartSweeper runs Sweep on the interval until stop is closed.
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}

func (s *Store) expired(e *entry) bool {
	return s.nowFunc().Sub(e.lastSeen) >= s.idleTimeout
}
