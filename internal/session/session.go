// Package session implements server-side login sessions.
//
// The browser only holds a signed session id in a cookie; the session
// itself (the logged-in user row) lives in a Store, either process
// memory or Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/dogwalk/internal/config"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
)

// Session is the server-side state of one login.
type Session struct {
	ID        string     `json:"id"`
	User      model.User `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store persists sessions by id. Get returns nil, nil for unknown or
// expired ids.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager ties a Store to the signed session cookie.
type Manager struct {
	store      Store
	codec      *securecookie.SecureCookie
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager builds a Manager. The cookie value is HMAC-signed with
// cfg.Secret, so a client cannot forge another session id.
func NewManager(cfg config.SessionConfig, store Store) *Manager {
	codec := securecookie.New([]byte(cfg.Secret), nil)
	codec.MaxAge(int(cfg.TTL.Seconds()))

	return &Manager{
		store:      store,
		codec:      codec,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

// Create starts a session for user and writes its cookie.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, user model.User) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	encoded, err := m.codec.Encode(m.cookieName, s.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})

	return s, nil
}

// Load returns the session referenced by the request cookie. A missing,
// tampered or expired cookie yields nil, nil.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	id, ok := m.sessionID(r)
	if !ok {
		return nil, nil
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s == nil || s.Expired(m.now()) {
		return nil, nil
	}
	return s, nil
}

// Destroy deletes the request's session, if any, and expires the cookie.
// The cookie is cleared even when the store delete fails.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if id, ok := m.sessionID(r); ok {
		if delErr := m.store.Delete(ctx, id); delErr != nil {
			err = fmt.Errorf("failed to delete session: %w", delErr)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	return err
}

func (m *Manager) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var id string
	if err := m.codec.Decode(m.cookieName, cookie.Value, &id); err != nil {
		return "", false
	}
	return id, id != ""
}

// ErrUnknownStore is returned by NewStore for unsupported store names.
var ErrUnknownStore = errors.New("unknown session store")

// NewStore picks the Store named by kind. client is only used for
// "redis" and must be non-nil there.
func NewStore(kind string, client *redis.Client) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("%w: redis store needs a client", ErrUnknownStore)
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, kind)
	}
}
