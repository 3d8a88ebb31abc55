// Package auth decides whether the designer may be used and issues the
// opaque tokens that identify API sessions.
package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/google/uuid"
)

// Gate answers whether the current user may open the designer.
type Gate interface {
	Allowed() bool
}

// StaticGate is a fixed answer, used by the desktop app.
type StaticGate bool

func (g StaticGate) Allowed() bool { return bool(g) }

// DesktopGate allows access when authorization is not required or a user
// is signed in.
func DesktopGate(required bool, user string) Gate {
	return StaticGate(!required || user != "")
}

// KeyChecker validates API keys for new sessions.
type KeyChecker struct {
	required bool
	key      string
}

func NewKeyChecker(required bool, key string) KeyChecker {
	return KeyChecker{required: required, key: key}
}

// Check reports whether key opens a session.
func (k KeyChecker) Check(key string) bool {
	if !k.required {
		return true
	}
	if k.key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(k.key)) == 1
}

// SessionManager maps opaque tokens to session IDs.
type SessionManager struct {
	mu     sync.Mutex
	tokens map[string]string // token -> session ID
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		tokens: make(map[string]string),
	}
}

// Issue creates a token for a new session and returns both.
func (m *SessionManager) Issue() (token, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token = uuid.NewString()
	sessionID = uuid.New().String()[:8]
	m.tokens[token] = sessionID
	return token, sessionID
}

func (m *SessionManager) Resolve(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.tokens[token]
	return id, ok
}

// Revoke forgets token and returns its session ID.
func (m *SessionManager) Revoke(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.tokens[token]
	delete(m.tokens, token)
	return id, ok
}
