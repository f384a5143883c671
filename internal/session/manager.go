package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"expense-tracker/internal/auth"
	"expense-tracker/internal/models"
	"expense-tracker/internal/storage"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "session"
	// DefaultTTL is how long sessions last (30 days).
	DefaultTTL = 30 * 24 * time.Hour
)

// Store persists session rows.
type Store interface {
	SaveSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Manager loads sessions from the request cookie and writes them back.
type Manager struct {
	store        Store
	ttl          time.Duration
	secureCookie bool
	now          func() time.Time
}

// NewManager creates a Manager. A non-positive ttl selects DefaultTTL.
func NewManager(store Store, ttl time.Duration, secureCookie bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, secureCookie: secureCookie, now: time.Now}
}

// Load returns the session named by the request cookie. A missing, unknown
// or expired cookie yields a fresh anonymous session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}, nil
	}

	rec, err := m.store.GetSession(r.Context(), cookie.Value)
	if errors.Is(err, storage.ErrNotFound) {
		return &Session{fromCookie: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	s := &Session{
		token:      rec.Token,
		userID:     rec.UserID,
		expiresAt:  rec.ExpiresAt,
		fromCookie: true,
	}
	if rec.Data != "" {
		// A row with undecodable flashes still identifies the user.
		_ = json.Unmarshal([]byte(rec.Data), &s.flashes)
	}
	return s, nil
}

// Save persists s and sets or clears the cookie. It must run before the
// response header is written.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s.discard != "" {
		if err := m.store.DeleteSession(ctx, s.discard); err != nil {
			return err
		}
		s.discard = ""
	}

	now := m.now()

	if s.empty() {
		if s.token != "" {
			if err := m.store.DeleteSession(ctx, s.token); err != nil {
				return err
			}
			s.token = ""
		}
		if s.fromCookie {
			m.clearCookie(w)
			s.fromCookie = false
		}
		s.dirty = false
		return nil
	}

	// Rolling session: renew once past the halfway point of its lifetime.
	if !s.dirty && s.expiresAt.Sub(now) >= m.ttl/2 {
		return nil
	}

	if s.token == "" {
		token, err := auth.GenerateSessionToken()
		if err != nil {
			return err
		}
		s.token = token
	}

	data, err := json.Marshal(s.flashes)
	if err != nil {
		return fmt.Errorf("encode flashes: %w", err)
	}
	s.expiresAt = now.Add(m.ttl)
	if err := m.store.SaveSession(ctx, models.Session{
		Token:        s.token,
		UserID:       s.userID,
		Data:         string(data),
		ExpiresAt:    s.expiresAt,
		LastActivity: now,
	}); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	s.fromCookie = true
	s.dirty = false
	return nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
