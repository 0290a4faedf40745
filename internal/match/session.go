package match

import "sync"

// Session serializes access to a match. Do runs one mutation at a time;
// View lets any number of readers look at a consistent state between
// mutations.
type Session struct {
	mu    sync.RWMutex
	match *Match
}

func NewSession(m *Match) *Session {
	return &Session{match: m}
}

// Do runs fn with exclusive access to the match.
func (s *Session) Do(fn func(m *Match) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.match)
}

// View runs fn with shared read access. fn must not mutate the match.
func (s *Session) View(fn func(m *Match) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.match)
}
