package session

import (
	"errors"
	"sync"

	authdomain "settlease-backend/internal/auth/domain"
)

// State is where a session is in the sign-in lifecycle
type State int

const (
	Unauthenticated State = iota
	Pending
	Authenticated
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// MarshalText renders the state by name in JSON
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var ErrInvalidTransition = errors.New("invalid session transition")

// EventKind identifies what an identity event reports
type EventKind int

const (
	EventSignInStarted EventKind = iota
	EventSignedIn
	EventSignInFailed
	EventSignedOut
)

// Event is one notification from the identity integration.
// Registry.Publish is the only way the server moves sessions.
type Event struct {
	Kind EventKind
	User *authdomain.User
	Err  error
}

// Snapshot is a consistent copy of a session's state
type Snapshot struct {
	State   State            `json:"state"`
	User    *authdomain.User `json:"user,omitempty"`
	LastErr string           `json:"last_error,omitempty"`
}

// Session tracks one user's authentication state.
// It is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	state   State
	user    *authdomain.User
	lastErr error
}

// New returns an unauthenticated session
func New() *Session {
	return &Session{}
}

// Begin marks a sign-in attempt as started
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Pending
	s.user = nil
	s.lastErr = nil
}

// Complete authenticates the session. From Pending it finishes the attempt;
// from any other state it resumes a sign-in that is still valid, as after a restart.
func (s *Session) Complete(user *authdomain.User) error {
	if user == nil {
		return errors.New("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated
	s.user = user
	s.lastErr = nil
	return nil
}

// Fail abandons a sign-in attempt
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Unauthenticated
	s.user = nil
	s.lastErr = err
}

// End signs the session out
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Unauthenticated
	s.user = nil
	s.lastErr = nil
}

// Apply performs the transition an event describes
func (s *Session) Apply(ev Event) error {
	switch ev.Kind {
	case EventSignInStarted:
		s.Begin()
	case EventSignedIn:
		return s.Complete(ev.User)
	case EventSignInFailed:
		s.Fail(ev.Err)
	case EventSignedOut:
		s.End()
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{State: s.state, User: s.user}
	if s.lastErr != nil {
		snap.LastErr = s.lastErr.Error()
	}
	return snap
}

// Registry holds one session per user id
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the user's session, creating an unauthenticated one if needed
func (r *Registry) Get(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		s = New()
		r.sessions[userID] = s
	}
	return s
}

// Remove forgets the user's session
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Publish applies ev to the user's session and returns the resulting state.
// A signed-out session is forgotten.
func (r *Registry) Publish(userID string, ev Event) (Snapshot, error) {
	s := r.Get(userID)
	if err := s.Apply(ev); err != nil {
		return s.Snapshot(), err
	}
	snap := s.Snapshot()
	if ev.Kind == EventSignedOut {
		r.Remove(userID)
	}
	return snap, nil
}
