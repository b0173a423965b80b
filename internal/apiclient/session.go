package apiclient

import "sync"

// TokenStore persists the access token between sessions. Implementations
// must be safe for use from a single goroutine; Session adds its own
// locking on top.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryTokenStore keeps the token in memory only.
type MemoryTokenStore struct {
	token string
}

func (m *MemoryTokenStore) Load() (string, error)   { return m.token, nil }
func (m *MemoryTokenStore) Save(token string) error { m.token = token; return nil }
func (m *MemoryTokenStore) Clear() error            { m.token = ""; return nil }

// Session tracks the current token pair and whether a user is signed in.
// Only the access token goes through the TokenStore; the refresh token is
// held in memory for the lifetime of the session.
type Session struct {
	mu      sync.RWMutex
	store   TokenStore
	token   string
	refresh string
}

// NewSession loads any persisted token from store. A load failure starts
// the session signed out rather than failing construction.
func NewSession(store TokenStore) *Session {
	s := &Session{store: store}
	if store != nil {
		if token, err := store.Load(); err == nil {
			s.token = token
		}
	}
	return s
}

// Token returns the current access token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// RefreshToken returns the current refresh token, empty when none is held.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// SetToken stores a freshly issued access token and persists it.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.store != nil {
		return s.store.Save(token)
	}
	return nil
}

// SetTokens stores a freshly issued token pair. The access token is
// persisted, the refresh token is not.
func (s *Session) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = access
	s.refresh = refresh
	if s.store != nil {
		return s.store.Save(access)
	}
	return nil
}

// Clear signs the session out and removes the persisted token.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refresh = ""
	if s.store != nil {
		return s.store.Clear()
	}
	return nil
}
