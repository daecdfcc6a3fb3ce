package view

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	sessionTTL           = 30 * time.Minute
	sessionSweepInterval = 5 * time.Minute
)

// State bundles the per-session view models.
type State struct {
	Directory  *Directory
	Submission *Submission
}

// Sessions is the registry of live view state, keyed by session token.
// State is created lazily on first use and torn down at logout or after the
// idle TTL expires; there is no ambient global beyond this registry.
type Sessions struct {
	mu     sync.Mutex
	states *cache.Cache
}

func NewSessions() *Sessions {
	return newSessions(sessionTTL, sessionSweepInterval)
}

func newSessions(ttl, sweep time.Duration) *Sessions {
	states := cache.New(ttl, sweep)
	states.OnEvicted(func(_ string, v interface{}) {
		v.(*State).Directory.Teardown()
	})
	return &Sessions{states: states}
}

// Get returns the view state for a session, creating it on first use. Each
// access renews the idle TTL.
func (s *Sessions) Get(sid string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.states.Get(sid); ok {
		state := v.(*State)
		s.states.SetDefault(sid, state)
		return state
	}

	state := &State{
		Directory:  NewDirectory(),
		Submission: NewSubmission(),
	}
	s.states.SetDefault(sid, state)
	return state
}

// Evict is the session-teardown entry point, called once at logout. The
// eviction hook stops any pending notice timers so nothing fires for a
// dead view.
func (s *Sessions) Evict(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states.Delete(sid)
}
