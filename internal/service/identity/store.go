// Package identity holds the identifier of the conversation the current
// session is attached to.
package identity

import (
	"strings"
	"sync"
)

// Store keeps at most one conversation identifier. The zero value is an empty
// store ready for use. A Store is owned by one chat session and passed to it
// explicitly; there is no package-level instance.
type Store struct {
	mu sync.RWMutex
	id string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current identifier and whether one is set.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.id != ""
}

// Ref returns a pointer to a copy of the identifier, or nil when absent. It is
// the shape the messages endpoint expects for conversation_id.
func (s *Store) Ref() *string {
	id, ok := s.Get()
	if !ok {
		return nil
	}
	return &id
}

// Set replaces the identifier. A blank id clears the store.
func (s *Store) Set(id string) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

// Clear forgets the identifier.
func (s *Store) Clear() {
	s.mu.Lock()
	s.id = ""
	s.mu.Unlock()
}
