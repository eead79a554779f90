// Package viewer gives every browser a stable, anonymous viewer id kept in a
// signed session cookie. Dashboard state is keyed by it.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const viewerIDKey = "viewer_id"

// minKeyLen is the shortest accepted signing key.
const minKeyLen = 32

type ctxKey struct{}

// Manager issues and reads viewer ids.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a Manager signing cookies with key. An empty key gets a
// random one, which invalidates viewer ids on every restart.
func NewManager(key, name string, secure bool, logger *zap.Logger) (*Manager, error) {
	if err := ValidateCookieName(name); err != nil {
		return nil, err
	}
	raw := []byte(key)
	if len(raw) == 0 {
		raw = securecookie.GenerateRandomKey(minKeyLen)
		if raw == nil {
			return nil, fmt.Errorf("generate session key: no randomness available")
		}
		logger.Warn("session_key not set; using a random key, viewer ids reset on restart")
	}
	if len(raw) < minKeyLen {
		return nil, fmt.Errorf("session key must be at least %d bytes, got %d", minKeyLen, len(raw))
	}

	store := sessions.NewCookieStore(raw)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: name, log: logger}, nil
}

// ValidateCookieName reports whether name can be used as the viewer cookie name.
func ValidateCookieName(name string) error {
	if name == "" {
		return errors.New("session cookie name must not be empty")
	}
	if err := (&http.Cookie{Name: name, Value: "x"}).Valid(); err != nil {
		return fmt.Errorf("session cookie name %q: %w", name, err)
	}
	return nil
}

// Middleware ensures every request carries a viewer id in its context,
// issuing a new one when the cookie is missing or invalid.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A tampered or expired cookie yields a fresh session and an error we
		// can ignore. A nil session means the store refused the request.
		sess, err := m.store.Get(r, m.name)
		if sess == nil {
			m.log.Warn("viewer session unavailable; issuing a new one", zap.Error(err))
			sess = sessions.NewSession(m.store, m.name)
			opts := *m.store.Options
			sess.Options = &opts
			sess.IsNew = true
		}

		id, _ := sess.Values[viewerIDKey].(string)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			sess.Values[viewerIDKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Warn("failed to save viewer session", zap.Error(err))
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// ID returns the viewer id for r, or "" outside the middleware.
func ID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

// WithTestViewer injects a viewer id the way Middleware would.
// Use in handler tests.
func WithTestViewer(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))
}
