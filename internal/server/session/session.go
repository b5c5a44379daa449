// Package session keeps per-browser state in two signed cookies: the login
// session, which carries only a user id, and a short-lived list of flash
// messages shown on the next rendered page.
package session

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "tasktracker.sid"
	FlashCookieName   = "tasktracker.flash"

	flashValidity = 5 * time.Minute
	flashSubject  = "flash"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Flash is a one-shot notice. MessageID names a catalogue entry; Data fills
// its template.
type Flash struct {
	Kind      Kind              `json:"k"`
	MessageID string            `json:"m"`
	Data      map[string]string `json:"d,omitempty"`
}

type flashClaims struct {
	jwt.RegisteredClaims
	Flashes []Flash `json:"f"`
}

// Manager reads and writes session state.
type Manager struct {
	secret   []byte
	validity time.Duration
	secure   bool
}

func NewManager(secret string, validity time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), validity: validity, secure: secure}
}

// State is the session as seen by one request. It is not safe for
// concurrent use.
type State struct {
	userID string

	sessionCookie bool
	sessionDirty  bool

	flashCookie bool
	incoming    []Flash
	outgoing    []Flash
}

// Load decodes the request's cookies. Missing, tampered or expired cookies
// yield an anonymous state; bad cookies are cleared on Save.
func (m *Manager) Load(r *http.Request) *State {
	st := &State{}

	if c, err := r.Cookie(SessionCookieName); err == nil {
		st.sessionCookie = true
		userID, err := auth.GetUserIDFromToken(c.Value, m.secret)
		if err != nil {
			st.sessionDirty = true
		} else {
			st.userID = userID
		}
	}

	if c, err := r.Cookie(FlashCookieName); err == nil {
		st.flashCookie = true
		st.incoming = m.parseFlashes(c.Value)
	}

	return st
}

// Save writes whatever cookies changed. It must run before the response
// header is written, and only once per request.
func (m *Manager) Save(w http.ResponseWriter, st *State) error {
	if st.sessionDirty {
		if st.userID == "" {
			http.SetCookie(w, m.expired(SessionCookieName))
		} else {
			token, err := auth.GenerateToken(st.userID, m.secret, m.validity)
			if err != nil {
				return err
			}
			http.SetCookie(w, m.cookie(SessionCookieName, token, m.validity))
		}
	}

	pending := st.pending()
	switch {
	case len(pending) > 0:
		token, err := m.signFlashes(pending)
		if err != nil {
			return err
		}
		http.SetCookie(w, m.cookie(FlashCookieName, token, flashValidity))
	case st.flashCookie:
		http.SetCookie(w, m.expired(FlashCookieName))
	}

	return nil
}

func (m *Manager) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) signFlashes(flashes []Flash) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   flashSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashValidity)),
		},
		Flashes: flashes,
	})
	return token.SignedString(m.secret)
}

func (m *Manager) parseFlashes(value string) []Flash {
	claims := &flashClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(flashSubject),
	)
	if err != nil || !token.Valid {
		return nil
	}
	return claims.Flashes
}

// UserID is the authenticated user's id, or "" for an anonymous session.
func (s *State) UserID() string { return s.userID }

func (s *State) Authenticated() bool { return s.userID != "" }

// Establish binds the session to userID.
func (s *State) Establish(userID string) {
	s.userID = userID
	s.sessionDirty = true
}

// Clear makes the session anonymous. Pending flashes survive.
func (s *State) Clear() {
	if s.sessionCookie || s.userID != "" {
		s.sessionDirty = true
	}
	s.userID = ""
}

func (s *State) AddFlash(f Flash) {
	s.outgoing = append(s.outgoing, f)
}

func (s *State) Success(messageID string, data map[string]string) {
	s.AddFlash(Flash{Kind: KindSuccess, MessageID: messageID, Data: data})
}

func (s *State) Error(messageID string, data map[string]string) {
	s.AddFlash(Flash{Kind: KindError, MessageID: messageID, Data: data})
}

// Flashes returns every pending flash, oldest first, and marks them shown.
func (s *State) Flashes() []Flash {
	out := s.pending()
	s.incoming = nil
	s.outgoing = nil
	return out
}

func (s *State) pending() []Flash {
	out := make([]Flash, 0, len(s.incoming)+len(s.outgoing))
	out = append(out, s.incoming...)
	return append(out, s.outgoing...)
}
