package home

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
	"conduit/internal/page"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
)

type navRec struct {
	pushed  []router.Route
	scrolls int
}

func (n *navRec) Push(r router.Route) { n.pushed = append(n.pushed, r) }
func (n *navRec) ScrollToTop()        { n.scrolls++ }

type memStore struct{ viewer *entity.Viewer }

func (s *memStore) Load() (*entity.Viewer, error) { return s.viewer, nil }
func (s *memStore) Save(v entity.Viewer) error    { s.viewer = &v; return nil }
func (s *memStore) Clear() error                  { s.viewer = nil; return nil }
func (s *memStore) Close() error                  { return nil }

func testDeps(t *testing.T, handler http.Handler) (page.Deps, *navRec) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	nav := &navRec{}
	return page.Deps{
		API:      api.NewClient(srv.URL, time.Second, log),
		Nav:      nav,
		Store:    &memStore{},
		SlowLoad: time.Millisecond,
		Log:      log,
	}, nav
}

// perform runs commands synchronously and feeds their messages back into the
// model until nothing is left.
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

func articleJSON(slug string, favorited bool, count int) string {
	return fmt.Sprintf(`{"slug":%q,"title":"t","description":"d","body":"b","tagList":["go"],
		"createdAt":"2021-02-18T03:22:56.637Z","updatedAt":"2021-02-18T03:22:56.637Z",
		"favorited":%t,"favoritesCount":%d,
		"author":{"username":"bob","bio":null,"image":null,"following":false}}`,
		slug, favorited, count)
}

func testViewer() entity.Viewer {
	return entity.Viewer{
		Profile:   entity.Profile{Username: "alice", Avatar: entity.NewAvatar(nil)},
		AuthToken: "T",
	}
}

func emptyFeed() entity.PaginatedList[entity.Article] {
	return entity.PaginatedList[entity.Article]{PerPage: perPage}
}

func TestGuestStartsOnGlobalFeed(t *testing.T) {
	var gotPath, gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/tags", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tags":["go","elm"]}`)
	})
	mux.HandleFunc("/articles", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"articles":[],"articlesCount":0}`)
	})
	deps, _ := testDeps(t, mux)

	m, cmds := Init(deps, session.Guest())
	perform(m, cmds)

	assert.Equal(t, tabGlobal, m.tab)
	assert.Equal(t, "/articles", gotPath)
	assert.Equal(t, "limit=10&offset=0", gotQuery)
	assert.True(t, m.View().ContainsText("No articles are here... yet."))
	assert.True(t, m.View().ContainsText("elm"), "tag sidebar renders")
}

func TestLoggedInStartsOnYourFeed(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/tags", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tags":[]}`)
	})
	mux.HandleFunc("/articles/feed", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"articles":[],"articlesCount":0}`)
	})
	deps, _ := testDeps(t, mux)

	m, cmds := Init(deps, session.LoggedIn(testViewer()))
	perform(m, cmds)

	assert.Equal(t, tabYour, m.tab)
	assert.Equal(t, "/articles/feed", gotPath)
	assert.True(t, m.View().ContainsText("Your Feed"))
}

func TestSlowLoadThreshold(t *testing.T) {
	deps, _ := testDeps(t, http.NotFoundHandler())
	m, _ := Init(deps, session.Guest())

	m.Update(SlowLoadPassed{})
	assert.Equal(t, page.StatusLoadingSlowly, m.feed.Kind())
	assert.Equal(t, page.StatusLoadingSlowly, m.tags.Kind())

	m.Update(FeedLoaded{Page: entity.FirstPage, Articles: emptyFeed()})
	assert.Equal(t, page.StatusLoaded, m.feed.Kind())

	// A late timer must not regress a loaded feed.
	m.Update(SlowLoadPassed{})
	assert.Equal(t, page.StatusLoaded, m.feed.Kind())
}

func TestStaleFeedCompletionDropped(t *testing.T) {
	deps, nav := testDeps(t, http.NotFoundHandler())
	m, _ := Init(deps, session.Guest())

	m.Update(PageSelected{Page: entity.NewPageNumber(2)})
	assert.Equal(t, 1, nav.scrolls)

	m.Update(FeedLoaded{Page: entity.FirstPage, Articles: emptyFeed()})
	assert.Equal(t, page.StatusLoading, m.feed.Kind(), "completion for the old page is dropped")

	m.Update(FeedLoaded{Page: entity.NewPageNumber(2), Articles: emptyFeed()})
	assert.Equal(t, page.StatusLoaded, m.feed.Kind())
}

func TestTagSelectionRefetches(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/articles", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"articles":[],"articlesCount":0}`)
	})
	deps, _ := testDeps(t, mux)
	m, _ := Init(deps, session.Guest())

	perform(m, m.Update(TagSelected{Tag: "go"}))
	assert.Equal(t, "limit=10&offset=0&tag=go", gotQuery)
	assert.True(t, m.View().ContainsText("#go"), "tag tab appears")
}

func TestYourFeedRequiresLogin(t *testing.T) {
	deps, nav := testDeps(t, http.NotFoundHandler())
	m, _ := Init(deps, session.Guest())

	cmds := m.Update(YourFeedSelected{})
	assert.Nil(t, cmds)
	require.Len(t, nav.pushed, 1)
	assert.Equal(t, router.Login(), nav.pushed[0])
}

func TestFavoriteToggle(t *testing.T) {
	article := entity.Article{
		Slug:           "s-1",
		Title:          "t",
		FavoritesCount: 1,
		Author:         entity.UnfollowedAuthor(entity.Profile{Username: "bob", Avatar: entity.NewAvatar(nil)}),
	}
	loaded := entity.PaginatedList[entity.Article]{Items: []entity.Article{article}, PerPage: perPage, Total: 1}

	t.Run("guest is sent to login", func(t *testing.T) {
		deps, nav := testDeps(t, http.NotFoundHandler())
		m, _ := Init(deps, session.Guest())
		m.Update(FeedLoaded{Page: entity.FirstPage, Articles: loaded})

		m.Update(FavoriteClicked{Slug: "s-1"})
		require.Len(t, nav.pushed, 1)
		assert.Equal(t, router.Login(), nav.pushed[0])
	})

	t.Run("success replaces the listed article", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/articles/s-1/favorite", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			fmt.Fprint(w, `{"article":`+articleJSON("s-1", true, 2)+`}`)
		})
		deps, _ := testDeps(t, mux)
		m, _ := Init(deps, session.LoggedIn(testViewer()))
		m.Update(FeedLoaded{Page: entity.FirstPage, Articles: loaded})

		perform(m, m.Update(FavoriteClicked{Slug: "s-1"}))

		f, ok := m.feed.Value()
		require.True(t, ok)
		got, ok := f.Find("s-1")
		require.True(t, ok)
		assert.True(t, got.Favorited)
		assert.Equal(t, 2, got.FavoritesCount)
	})

	t.Run("failure raises the error banner", func(t *testing.T) {
		deps, _ := testDeps(t, http.NotFoundHandler())
		m, _ := Init(deps, session.LoggedIn(testViewer()))
		m.Update(FeedLoaded{Page: entity.FirstPage, Articles: loaded})

		perform(m, m.Update(FavoriteClicked{Slug: "s-1"}))
		require.NotEmpty(t, m.errors)

		m.Update(DismissErrors{})
		assert.Empty(t, m.errors)
	})
}
