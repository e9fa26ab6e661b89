// internal/game/game_store.go
package game

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for ids the store does not hold.
var ErrSessionNotFound = errors.New("session not found")

// Session guards one State. All access to the state goes through Do, so at most one
// action is in flight per session.
type Session struct {
	mu    sync.Mutex
	state *State
}

// Do runs fn with exclusive access to the session's state.
func (s *Session) Do(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// ID is the session id. It never changes, so reading it needs no lock.
func (s *Session) ID() uuid.UUID {
	return s.state.SessionID
}

// Store holds the live sessions of a process, keyed by session id. Sessions share no
// mutable state with each other.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Add registers a state and returns its session. Adding a second state with the same
// id replaces the first.
func (st *Store) Add(state *State) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess := &Session{state: state}
	st.sessions[state.SessionID] = sess
	return sess
}

func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// Do runs fn against the session with the given id.
func (st *Store) Do(id uuid.UUID, fn func(*State) error) error {
	sess, ok := st.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	return sess.Do(fn)
}

func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// IDs lists the ids of all held sessions.
func (st *Store) IDs() []uuid.UUID {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]uuid.UUID, 0, len(st.sessions))
	for id := range st.sessions {
		out = append(out, id)
	}
	return out
}
