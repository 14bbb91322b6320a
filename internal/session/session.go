// Package session manages the signed, client-held session cookie.
// The cookie encodes at most a user id plus any pending flash messages;
// the server keeps no session table.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// Value keys inside the session cookie.
const userIDKey = "user_id"

// Manager reads and writes the signed session cookie.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager creates a Manager signing cookies with the given secret.
// secure controls the cookie Secure flag and should be true in production.
func NewManager(secret []byte, name string, maxAge time.Duration, secure bool) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: name}
}

// session returns the decoded session for the request. A missing, expired
// or tampered cookie yields a fresh empty session, never an error.
func (m *Manager) session(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		// Invalid signature or stale format: treat as a new session.
		s, _ = m.store.New(r, m.name)
	}
	return s
}

// UserID extracts the user id carried by the session token.
// The second return value is false for anonymous sessions.
func (m *Manager) UserID(r *http.Request) (int64, bool) {
	s := m.session(r)
	id, ok := s.Values[userIDKey].(int64)
	return id, ok
}

// Renew discards any prior identity and binds the session to the given
// user. The full clear-then-set mirrors the login contract: a successful
// login never inherits state from an earlier session.
func (m *Manager) Renew(w http.ResponseWriter, r *http.Request, userID int64) error {
	s := m.session(r)
	for k := range s.Values {
		delete(s.Values, k)
	}
	s.Values[userIDKey] = userID
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear unconditionally empties the session. Idempotent whether or not a
// session existed.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	for k := range s.Values {
		delete(s.Values, k)
	}
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Flash queues a message to show on the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg string) error {
	s := m.session(r)
	s.AddFlash(msg)
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Flashes drains queued messages, persisting their removal.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	s := m.session(r)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save(r, w)
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
