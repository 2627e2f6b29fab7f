package scope

import (
	"errors"
	"sync"

	"arcade/models"
)

var (
	// ErrSessionConflict is returned when a session already exists for the
	// requested scope and game kind.
	ErrSessionConflict = errors.New("a game is already in progress for this scope")
	// ErrSessionNotFound is returned when an action targets a scope with no
	// active session, e.g. a stale duplicate button press.
	ErrSessionNotFound = errors.New("no active game for this scope")
)

type sessionKey struct {
	scope string
	kind  models.GameKind
}

// SessionRegistry holds at most one live session per (scope, kind). Callers
// must hold the scope lock across their whole read-decide-write sequence;
// the registry's own mutex only protects the map itself.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[sessionKey]any
}

// NewSessionRegistry creates an empty session registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[sessionKey]any),
	}
}

// TryCreate atomically checks for an existing session and inserts a new one
// built by factory. It is the sole gate against duplicate session creation:
// returns ErrSessionConflict without calling factory when occupied.
func (r *SessionRegistry) TryCreate(scope string, kind models.GameKind, factory func() (any, error)) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey{scope: scope, kind: kind}
	if _, ok := r.sessions[key]; ok {
		return nil, ErrSessionConflict
	}

	session, err := factory()
	if err != nil {
		return nil, err
	}
	r.sessions[key] = session
	return session, nil
}

// Get returns the live session for (scope, kind), or ErrSessionNotFound
func (r *SessionRegistry) Get(scope string, kind models.GameKind) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionKey{scope: scope, kind: kind}]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove destroys the session for (scope, kind); a no-op when absent
func (r *SessionRegistry) Remove(scope string, kind models.GameKind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionKey{scope: scope, kind: kind})
}
