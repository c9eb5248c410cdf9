package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	gorilla "github.com/gorilla/sessions"
)

// Flash classes.
const (
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
)

// A Flash is a message stored in the session until its next read.
type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}

// A Session wraps one request's *gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession wraps the provided *gorilla.Session.
func NewSession(g *gorilla.Session) Session { return Session{s: g} }

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	if s.s == nil {
		return nil
	}

	return s.s.Values[key]
}

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	if s.s == nil {
		return ErrNoSession
	}

	s.s.Values[key] = val
	return s.Save(w, r)
}

// Delete removes the session by making its MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	if s.s == nil {
		return ErrNoSession
	}

	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Flashes retrieves the []Flash stored in the session, clearing them.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	if s.s == nil {
		return nil
	}

	raw := s.s.Flashes()
	fs := make([]Flash, 0, len(raw))
	for _, item := range raw {
		f, ok := item.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}

	if len(fs) > 0 {
		// flashes are removed on access but the removal only sticks
		// once the session is saved
		if err := s.Save(w, r); err != nil {
			return nil
		}
	}

	return fs
}

// SetFlash stores a Flash in the session.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, f Flash) error {
	if s.s == nil {
		return ErrNoSession
	}

	s.s.AddFlash(f)
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error {
	if s.s == nil {
		return ErrNoSession
	}

	return s.s.Save(r, w)
}

// The Storer retrieves the Session for the given *http.Request.
type Storer interface {
	GetSession(r *http.Request) (Session, error)
}

// A Store implements Storer over cookie-backed gorilla sessions.
type Store struct {
	name  string
	store gorilla.Store
}

// NewStore constructs a cookie-backed *Store keyed with authKey.
func NewStore(name string, authKey []byte) *Store {
	gob.Register(Flash{})
	return &Store{name: name, store: gorilla.NewCookieStore(authKey)}
}

// GetSession retrieves the request's Session, creating one when the
// request carries none.
func (st *Store) GetSession(r *http.Request) (Session, error) {
	g, err := st.store.Get(r, st.name)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrNoSession, err)
	}

	return NewSession(g), nil
}
