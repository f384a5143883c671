// Package session correlates browser requests with a logged-in user and
// carries one-time flash messages across redirects.
package session

import "time"

// Level is the severity of a flash message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Flash is a one-time notification shown on the next rendered page.
type Flash struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Session is the state of one browser session. Handlers receive it
// explicitly and change it only through its methods; the Manager persists
// the changes when the response is written.
type Session struct {
	token     string
	userID    int64
	flashes   []Flash
	expiresAt time.Time

	// discard is a token whose stored row must be deleted on save, set
	// when the session is cleared or rotated.
	discard    string
	fromCookie bool
	dirty      bool
}

// Token returns the current session token, empty until the session is saved.
func (s *Session) Token() string {
	return s.token
}

// UserID returns the logged-in user, if any.
func (s *Session) UserID() (int64, bool) {
	return s.userID, s.userID != 0
}

// SetUserID marks the session as logged in. The token is rotated so a
// token issued before login cannot be reused afterwards.
func (s *Session) SetUserID(id int64) {
	s.userID = id
	s.rotate()
}

// Clear drops the user and every pending flash message.
func (s *Session) Clear() {
	s.userID = 0
	s.flashes = nil
	s.rotate()
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(level Level, message string) {
	s.flashes = append(s.flashes, Flash{Level: level, Message: message})
	s.dirty = true
}

// Flashes returns the pending messages without consuming them.
func (s *Session) Flashes() []Flash {
	return append([]Flash(nil), s.flashes...)
}

// PopFlashes returns and removes the pending messages.
func (s *Session) PopFlashes() []Flash {
	flashes := s.flashes
	if len(flashes) > 0 {
		s.flashes = nil
		s.dirty = true
	}
	return flashes
}

func (s *Session) rotate() {
	if s.token != "" && s.discard == "" {
		s.discard = s.token
	}
	s.token = ""
	s.dirty = true
}

func (s *Session) empty() bool {
	return s.userID == 0 && len(s.flashes) == 0
}
