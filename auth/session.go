package auth

import (
	"sync"

	"github.com/mzigoego/mzigo/client"
)

// State is the authentication state of the running process.
type State int

const (
	// StateUnknown is the initial state, before the startup check resolves.
	StateUnknown State = iota
	// StateAuthenticated means a user is logged in.
	StateAuthenticated
	// StateAnonymous means no user is logged in.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session handed to observers.
type Snapshot struct {
	State State
	User  *client.User
	Err   string
}

// IsAuthenticated reports whether a user is logged in. It implies User != nil.
func (s Snapshot) IsAuthenticated() bool { return s.State == StateAuthenticated }

// IsLoading reports whether the startup check has not resolved yet.
func (s Snapshot) IsLoading() bool { return s.State == StateUnknown }

// Session is the single process-wide record of who is logged in. It mutates
// only through the named transitions below, and every transition notifies
// the registered observers with a fresh snapshot.
type Session struct {
	mu    sync.RWMutex
	state State
	user  *client.User
	err   string

	subMu sync.Mutex
	subs  []func(Snapshot)
}

// NewSession creates a session in the Unknown state, pending the startup check.
func NewSession() *Session {
	return &Session{state: StateUnknown}
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state, Err: s.err}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers an observer called after every transition. Observers run
// on the goroutine performing the transition.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.subMu.Lock()
	s.subs = append(s.subs, fn)
	s.subMu.Unlock()
}

func (s *Session) notify(snap Snapshot) {
	s.subMu.Lock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// toAuthenticated transitions to Authenticated with the given user. The user
// must not be nil; Authenticated always carries one.
func (s *Session) toAuthenticated(user *client.User) {
	if user == nil {
		return
	}
	s.mu.Lock()
	u := *user
	s.state = StateAuthenticated
	s.user = &u
	s.err = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// toAnonymous transitions to Anonymous, clearing the user and any error.
func (s *Session) toAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.err = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// toAnonymousWithError transitions to Anonymous recording a non-session error
// from the startup check.
func (s *Session) toAnonymousWithError(msg string) {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.err = msg
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// setError records a failure without changing state or user, e.g. a rejected
// login attempt while Anonymous.
func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// replaceUser swaps in an updated profile snapshot. Only meaningful while
// Authenticated; ignored otherwise.
func (s *Session) replaceUser(user *client.User) {
	if user == nil {
		return
	}
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return
	}
	u := *user
	s.user = &u
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}
