package router

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteRoundTrip(t *testing.T) {
	// Root is excluded: it renders "/" which parses back as Home.
	routes := []Route{
		Home(),
		Login(),
		Logout(),
		Register(),
		Settings(),
		Profile("alice"),
		Article("foo-bar"),
		NewArticle(),
		EditArticle("foo-bar"),
	}
	for _, r := range routes {
		assert.Equal(t, r, ParseRoute(r.Path()), "round-trip of %s", r.Path())
	}

	assert.Equal(t, "/", Root().Path())
	assert.Equal(t, Home(), ParseRoute(Root().Path()))

	// The NotFound sentinel path stays NotFound and never aliases a page.
	assert.Equal(t, "/not-found", NotFound().Path())
	assert.Equal(t, NotFound(), ParseRoute(NotFound().Path()))
}

func TestParseRoute(t *testing.T) {
	cases := []struct {
		path string
		want Route
	}{
		{"/", Home()},
		{"", Home()},
		{"/login", Login()},
		{"/register", Register()},
		{"/settings", Settings()},
		{"/profile/alice", Profile("alice")},
		{"/article/foo-bar", Article("foo-bar")},
		{"/editor", NewArticle()},
		{"/editor/foo-bar", EditArticle("foo-bar")},
		{"/unknown", NotFound()},
		{"/profile/", NotFound()},
		{"/editor/", NewArticle()},
		{"/article", NotFound()},
		{"/login/extra", NotFound()},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseRoute(tc.path), "path %q", tc.path)
	}
}

func TestHistoryPushNotifiesObserver(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	var seen []Route
	h := NewHistory(func(r Route) { seen = append(seen, r) }, log)

	h.Push(Home())
	h.Push(Article("foo"))
	h.Push(Login())

	require.Len(t, seen, 3)
	assert.Equal(t, Home(), seen[0])
	assert.Equal(t, Article("foo"), seen[1])
	assert.Equal(t, Login(), seen[2])
	assert.Equal(t, "/login", h.Current())
	assert.Equal(t, []string{"/", "/article/foo", "/login"}, h.Stack())
}
