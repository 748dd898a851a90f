package state

import "sync"

// Store holds a State for callers outside the UI event loop. Every change
// goes through Reduce.
type Store struct {
	mu          sync.RWMutex
	state       State
	initialized bool
}

// NewStore returns a Store seeded with Initial().
func NewStore() *Store {
	return &Store{state: Initial(), initialized: true}
}

// Dispatch reduces the stored state with a.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.state = Initial()
		s.initialized = true
	}
	s.state = Reduce(s.state, a)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Initial()
	}
	snap := s.state
	snap.Posts = clonePosts(s.state.Posts)
	return snap
}
