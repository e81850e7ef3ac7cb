// Package session keeps per-user conversation state in memory.
package session

import (
	"sync"

	"github.com/m3rciful/recipebot/internal/recipes"
)

// State identifies where a user is in the conversation.
type State string

const (
	// StateIdle indicates no input is expected.
	StateIdle State = "idle"
	// StateAwaitingSearchText indicates the next free text is a search term.
	StateAwaitingSearchText State = "awaiting_search_text"
)

// Session is a snapshot of one user's state.
type Session struct {
	// Results is the last stored search result set.
	Results []recipes.Summary
	// HasResults distinguishes "nothing stored" from "stored an empty result set".
	HasResults bool
	State      State
}

// Store maps user ids to sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns a copy of the user's session; unknown users get an idle session.
	Get(userID int64) Session
	// SetResults replaces the stored result set wholesale.
	SetResults(userID int64, results []recipes.Summary)
	SetAwaitingInput(userID int64, awaiting bool)
	// Update applies fn atomically to the user's session.
	Update(userID int64, fn func(*Session))
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore constructs an in-memory Store. Sessions are created on first
// write and never evicted.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[int64]*Session),
	}
}

func (m *memoryStore) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{State: StateIdle}
	}
	return s.clone()
}

func (m *memoryStore) SetResults(userID int64, results []recipes.Summary) {
	m.Update(userID, func(s *Session) {
		s.Results = results
		s.HasResults = true
	})
}

func (m *memoryStore) SetAwaitingInput(userID int64, awaiting bool) {
	m.Update(userID, func(s *Session) {
		if awaiting {
			s.State = StateAwaitingSearchText
		} else {
			s.State = StateIdle
		}
	})
}

func (m *memoryStore) Update(userID int64, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{State: StateIdle}
		m.sessions[userID] = s
	}
	fn(s)
	// Detach from the caller's slice so later mutations cannot leak in.
	if s.Results != nil {
		s.Results = append([]recipes.Summary(nil), s.Results...)
	}
}

func (s *Session) clone() Session {
	out := *s
	if s.Results != nil {
		out.Results = append([]recipes.Summary(nil), s.Results...)
	}
	return out
}
