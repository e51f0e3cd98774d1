package settings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit/internal/api"
	"conduit/internal/entity"
	"conduit/internal/form"
	"conduit/internal/page"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
)

type navRec struct{ pushed []router.Route }

func (n *navRec) Push(r router.Route) { n.pushed = append(n.pushed, r) }
func (n *navRec) ScrollToTop()        {}

type memStore struct{ viewer *entity.Viewer }

func (s *memStore) Load() (*entity.Viewer, error) { return s.viewer, nil }
func (s *memStore) Save(v entity.Viewer) error    { s.viewer = &v; return nil }
func (s *memStore) Clear() error                  { s.viewer = nil; return nil }
func (s *memStore) Close() error                  { return nil }

func testDeps(t *testing.T, handler http.Handler) (page.Deps, *navRec, *memStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	nav := &navRec{}
	store := &memStore{}
	return page.Deps{
		API:      api.NewClient(srv.URL, time.Second, log),
		Nav:      nav,
		Store:    store,
		SlowLoad: time.Millisecond,
		Log:      log,
	}, nav, store
}

func perform(m *Model, cmds []program.Cmd) {
	for len(cmds) > 0 {
		var next []program.Cmd
		for _, cmd := range cmds {
			if msg := cmd(context.Background()); msg != nil {
				next = append(next, m.Update(msg)...)
			}
		}
		cmds = next
	}
}

func testViewer() entity.Viewer {
	return entity.Viewer{
		Profile:   entity.Profile{Username: "alice", Avatar: entity.NewAvatar(nil)},
		AuthToken: "T",
	}
}

const currentUser = `{"user":{"username":"alice","email":"a@b","token":"T",
	"bio":"I work at statefarm","image":"https://cdn/alice.png"}}`

func prefilled(t *testing.T, mux *http.ServeMux) (*Model, *navRec, *memStore) {
	t.Helper()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, currentUser)
	})
	deps, nav, store := testDeps(t, mux)
	m, cmds := Init(deps, session.LoggedIn(testViewer()))
	perform(m, cmds)
	return m, nav, store
}

func TestGuestIsRedirected(t *testing.T) {
	deps, nav, _ := testDeps(t, http.NotFoundHandler())
	_, cmds := Init(deps, session.Guest())

	assert.Empty(t, cmds)
	require.Len(t, nav.pushed, 1)
	assert.Equal(t, router.Login(), nav.pushed[0])
}

func TestPrefillFromCurrentUser(t *testing.T) {
	m, _, _ := prefilled(t, http.NewServeMux())

	f, ok := m.Form()
	require.True(t, ok)
	assert.Equal(t, "https://cdn/alice.png", f.Value(form.KeyAvatar))
	assert.Equal(t, "alice", f.Value(form.KeyUsername))
	assert.Equal(t, "I work at statefarm", f.Value(form.KeyBio))
	assert.Equal(t, "a@b", f.Value(form.KeyEmail))
	assert.Equal(t, "", f.Value(form.KeyPassword))
}

func TestPrefillFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":{"token":["is expired"]}}`)
	})
	deps, _, _ := testDeps(t, mux)
	m, cmds := Init(deps, session.LoggedIn(testViewer()))
	perform(m, cmds)

	assert.Equal(t, page.StatusFailed, m.status.Kind())
	require.Len(t, m.Problems(), 1)
	assert.Equal(t, "token is expired", m.Problems()[0].Message())
}

func TestShortPasswordRejected(t *testing.T) {
	m, _, _ := prefilled(t, http.NewServeMux())

	m.Update(FieldEdited{Key: form.KeyPassword, Value: "short"})
	assert.Nil(t, m.Update(SubmitClicked{}))
	require.Len(t, m.Problems(), 1)
	assert.Equal(t, "password must be at least 8 characters long", m.Problems()[0].Message())
}

func TestSaveOmitsEmptyPassword(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /user", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"user":{"username":"alice2","email":"a@b","token":"T2","bio":null,"image":null}}`)
	})
	m, nav, store := prefilled(t, mux)

	m.Update(FieldEdited{Key: form.KeyUsername, Value: "alice2"})
	perform(m, m.Update(SubmitClicked{}))

	assert.JSONEq(t, `{"user":{
		"image":"https://cdn/alice.png",
		"username":"alice2",
		"bio":"I work at statefarm",
		"email":"a@b"
	}}`, gotBody, "the untouched password stays off the wire")

	require.NotNil(t, store.viewer)
	assert.Equal(t, entity.Username("alice2"), store.viewer.Username())
	assert.Equal(t, "T2", store.viewer.AuthToken)

	assert.True(t, m.session.LoggedIn())
	require.Len(t, nav.pushed, 1)
	assert.Equal(t, router.Home(), nav.pushed[0])
}
