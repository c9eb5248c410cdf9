package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TopShelfBullard/rails/http/session"
)

func TestStoreGetSession(t *testing.T) {
	st := session.NewStore("rails-test", []byte("0123456789abcdef0123456789abcdef"))
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	s, err := st.GetSession(r)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, s.Set(w, r, "client", "37signals"))
	require.Equal(t, "37signals", s.Get("client"))
}

func TestSessionFlashes(t *testing.T) {
	st := session.NewStore("rails-test", []byte("0123456789abcdef0123456789abcdef"))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	s, err := st.GetSession(r)
	require.NoError(t, err)

	f := session.Flash{Class: session.FlashSuccess, Msg: "saved"}
	require.NoError(t, s.SetFlash(w, r, f))

	require.Equal(t, []session.Flash{f}, s.Flashes(w, r))
	require.Empty(t, s.Flashes(w, r))
}

func TestZeroSession(t *testing.T) {
	var s session.Session
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	require.Nil(t, s.Get("anything"))
	require.ErrorIs(t, s.Set(w, r, "k", "v"), session.ErrNoSession)
	require.ErrorIs(t, s.Save(w, r), session.ErrNoSession)
	require.Nil(t, s.Flashes(w, r))
}
