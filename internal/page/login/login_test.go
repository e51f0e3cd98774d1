package login

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

func problemMessages(problems []form.Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Message())
	}
	return out
}

func TestValidationBlocksSubmit(t *testing.T) {
	deps, _, _ := testDeps(t, http.NotFoundHandler())
	m, _ := Init(deps, session.Guest())

	cmds := m.Update(SubmitClicked{})
	assert.Nil(t, cmds, "an invalid form sends nothing")
	assert.Equal(t, []string{
		"email can't be blank",
		"password can't be blank",
	}, problemMessages(m.Problems()))
}

func TestLoginFlow(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"user":{"username":"alice","email":"a@b","token":"T","image":null,"bio":null}}`)
	})
	deps, nav, store := testDeps(t, mux)
	m, _ := Init(deps, session.Guest())

	m.Update(FieldEdited{Key: form.KeyEmail, Value: " a@b "})
	m.Update(FieldEdited{Key: form.KeyPassword, Value: "12345678"})
	perform(m, m.Update(SubmitClicked{}))

	assert.JSONEq(t, `{"user":{"email":"a@b","password":"12345678"}}`, gotBody, "values are trimmed before encoding")
	assert.Empty(t, m.Problems())

	require.NotNil(t, store.viewer, "viewer persisted to local storage")
	assert.Equal(t, entity.Username("alice"), store.viewer.Username())

	assert.True(t, m.session.LoggedIn())
	require.Len(t, nav.pushed, 1)
	assert.Equal(t, router.Home(), nav.pushed[0])
}

func TestServerRejectionShowsProblems(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"errors":{"email or password":["is invalid"]}}`)
	})
	deps, nav, store := testDeps(t, mux)
	m, _ := Init(deps, session.Guest())

	m.Update(FieldEdited{Key: form.KeyEmail, Value: "a@b"})
	m.Update(FieldEdited{Key: form.KeyPassword, Value: "12345678"})
	perform(m, m.Update(SubmitClicked{}))

	require.Len(t, m.Problems(), 1)
	assert.True(t, m.Problems()[0].IsServerError())
	assert.Equal(t, "email or password is invalid", m.Problems()[0].Message())
	assert.Nil(t, store.viewer)
	assert.Empty(t, nav.pushed)
}
