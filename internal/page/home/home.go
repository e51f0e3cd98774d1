// Package home is the landing page: the tag sidebar plus a paginated feed
// switched between the viewer's follows, the global firehose, and a single
// tag.
package home

import (
	"context"

	"conduit/internal/api"
	"conduit/internal/entity"
	"conduit/internal/page"
	"conduit/internal/page/feed"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
	"conduit/internal/view"
)

// perPage is the home feed page size. Profile uses its own, smaller one.
const perPage = 10

type tab int

const (
	tabYour tab = iota
	tabGlobal
	tabTag
)

// Model is the home page state.
type Model struct {
	deps    page.Deps
	session session.Session
	tab     tab
	tag     entity.Tag
	pageNum entity.PageNumber
	tags    page.Status[[]entity.Tag]
	feed    page.Status[feed.Model]
	errors  []entity.ErrorMessage
}

// Msg marks home-page messages.
type Msg interface{ homeMsg() }

type msg struct{}

func (msg) homeMsg() {}

// TagsLoaded completes the sidebar tags fetch.
type TagsLoaded struct {
	msg
	Tags []entity.Tag
	Errs []entity.ErrorMessage
}

// FeedLoaded completes an article-list fetch for the given page.
type FeedLoaded struct {
	msg
	Page     entity.PageNumber
	Articles entity.PaginatedList[entity.Article]
	Errs     []entity.ErrorMessage
}

// SlowLoadPassed fires when the slow-load threshold elapses.
type SlowLoadPassed struct{ msg }

// YourFeedSelected switches to the follows-based feed.
type YourFeedSelected struct{ msg }

// GlobalFeedSelected switches to the global feed.
type GlobalFeedSelected struct{ msg }

// TagSelected switches to a single-tag feed.
type TagSelected struct {
	msg
	Tag entity.Tag
}

// PageSelected moves to another feed page.
type PageSelected struct {
	msg
	Page entity.PageNumber
}

// FavoriteClicked toggles the favorite on a listed article.
type FavoriteClicked struct {
	msg
	Slug entity.Slug
}

// FavoriteCompleted carries the replacement article.
type FavoriteCompleted struct {
	msg
	Article entity.Article
	Errs    []entity.ErrorMessage
}

// DismissErrors clears the error banner.
type DismissErrors struct{ msg }

// Init builds the page and fires the tag and feed fetches. A logged-in
// viewer starts on their own feed, guests on the global one.
func Init(deps page.Deps, sess session.Session) (*Model, []program.Cmd) {
	m := &Model{
		deps:    deps,
		session: sess,
		tab:     tabGlobal,
		pageNum: entity.FirstPage,
		tags:    page.Loading[[]entity.Tag](),
		feed:    page.Loading[feed.Model](),
	}
	if sess.LoggedIn() {
		m.tab = tabYour
	}
	return m, []program.Cmd{
		m.fetchTags(),
		m.fetchFeed(m.pageNum),
		program.Tick(deps.SlowLoad, SlowLoadPassed{}),
	}
}

// Session exposes the page's session for the shell to carry across routes.
func (m *Model) Session() session.Session { return m.session }

func (m *Model) fetchTags() program.Cmd {
	client := m.deps.API
	return func(ctx context.Context) program.Msg {
		tags, errs := client.Tags(ctx)
		return TagsLoaded{Tags: tags, Errs: errs}
	}
}

func (m *Model) feedRequest(p entity.PageNumber) api.FeedRequest {
	req := api.FeedRequest{Page: p, PerPage: perPage}
	switch m.tab {
	case tabYour:
		req.Personal = true
	case tabTag:
		req.Tag = m.tag
	}
	return req
}

func (m *Model) fetchFeed(p entity.PageNumber) program.Cmd {
	client := m.deps.API
	viewer := m.session.ViewerRef()
	req := m.feedRequest(p)
	return func(ctx context.Context) program.Msg {
		articles, errs := client.ListArticles(ctx, viewer, req)
		return FeedLoaded{Page: p, Articles: articles, Errs: errs}
	}
}

// refetch resets the feed status and fires a fresh fetch plus its slow-load
// timer.
func (m *Model) refetch() []program.Cmd {
	m.feed = page.Loading[feed.Model]()
	return []program.Cmd{
		m.fetchFeed(m.pageNum),
		program.Tick(m.deps.SlowLoad, SlowLoadPassed{}),
	}
}

// Update advances the page. Messages for states the page has moved past are
// dropped.
func (m *Model) Update(raw program.Msg) []program.Cmd {
	switch msg := raw.(type) {
	case TagsLoaded:
		if !m.tags.IsLoading() {
			m.deps.Log.Debug("Dropping stale tags completion")
			return nil
		}
		if msg.Errs != nil {
			m.tags = page.Failed[[]entity.Tag]()
			return nil
		}
		m.tags = page.Loaded(msg.Tags)

	case FeedLoaded:
		if !m.feed.IsLoading() || msg.Page != m.pageNum {
			m.deps.Log.WithField("page", msg.Page).Debug("Dropping stale feed completion")
			return nil
		}
		if msg.Errs != nil {
			m.feed = page.Failed[feed.Model]()
			return nil
		}
		m.feed = page.Loaded(feed.New(m.session, msg.Articles))

	case SlowLoadPassed:
		m.tags = m.tags.SlowedDown()
		m.feed = m.feed.SlowedDown()

	case YourFeedSelected:
		if !m.session.LoggedIn() {
			m.deps.Nav.Push(router.Login())
			return nil
		}
		m.tab = tabYour
		m.pageNum = entity.FirstPage
		return m.refetch()

	case GlobalFeedSelected:
		m.tab = tabGlobal
		m.pageNum = entity.FirstPage
		return m.refetch()

	case TagSelected:
		m.tab = tabTag
		m.tag = msg.Tag
		m.pageNum = entity.FirstPage
		return m.refetch()

	case PageSelected:
		m.pageNum = msg.Page
		m.deps.Nav.ScrollToTop()
		return m.refetch()

	case FavoriteClicked:
		return m.toggleFavorite(msg.Slug)

	case FavoriteCompleted:
		if msg.Errs != nil {
			m.errors = msg.Errs
			return nil
		}
		if f, ok := m.feed.Value(); ok {
			f.Replace(msg.Article)
			m.feed = page.Loaded(f)
		}

	case DismissErrors:
		m.errors = nil

	case page.SessionChanged:
		m.session = msg.Session
	}
	return nil
}

func (m *Model) toggleFavorite(slug entity.Slug) []program.Cmd {
	viewer, ok := m.session.Viewer()
	if !ok {
		m.deps.Nav.Push(router.Login())
		return nil
	}
	f, ok := m.feed.Value()
	if !ok {
		return nil
	}
	article, ok := f.Find(slug)
	if !ok {
		return nil
	}

	client := m.deps.API
	favorited := article.Favorited
	return []program.Cmd{func(ctx context.Context) program.Msg {
		var a entity.Article
		var errs []entity.ErrorMessage
		if favorited {
			a, errs = client.Unfavorite(ctx, viewer, slug)
		} else {
			a, errs = client.Favorite(ctx, viewer, slug)
		}
		return FavoriteCompleted{Article: a, Errs: errs}
	}}
}

// View renders the page.
func (m *Model) View() *view.Node {
	banner := view.El("div").Class("banner").Append(
		view.El("h1", view.Text("conduit")).Class("logo-font"),
		view.El("p", view.Text("A place to share your knowledge.")),
	)

	return view.El("div").Class("home-page").Append(
		banner,
		page.ErrorBanner(m.errors, DismissErrors{}),
		m.viewTabs(),
		m.viewFeed(),
		m.viewTags(),
	)
}

func (m *Model) viewTabs() *view.Node {
	item := func(label string, active bool, activate any) *view.Node {
		class := "nav-link"
		if active {
			class = "nav-link active"
		}
		return view.El("li", view.El("a", view.Text(label)).Class(class)).
			Class("nav-item").
			OnActivate(activate)
	}

	tabs := view.El("ul").Class("nav nav-pills outline-active")
	if m.session.LoggedIn() {
		tabs.Append(item("Your Feed", m.tab == tabYour, YourFeedSelected{}))
	}
	tabs.Append(item("Global Feed", m.tab == tabGlobal, GlobalFeedSelected{}))
	if m.tab == tabTag {
		tabs.Append(item("#"+m.tag.String(), true, TagSelected{Tag: m.tag}))
	}
	return view.El("div", tabs).Class("feed-toggle")
}

func (m *Model) viewFeed() *view.Node {
	switch m.feed.Kind() {
	case page.StatusLoading:
		return view.El("span")
	case page.StatusLoadingSlowly:
		return page.LoadingIcon()
	case page.StatusFailed:
		return page.LoadFailed("feed")
	}
	f, _ := m.feed.Value()
	return f.View(m.pageNum,
		func(slug entity.Slug) any { return FavoriteClicked{Slug: slug} },
		func(p entity.PageNumber) any { return PageSelected{Page: p} },
	)
}

func (m *Model) viewTags() *view.Node {
	sidebar := view.El("div").Class("sidebar").Append(
		view.El("p", view.Text("Popular Tags")),
	)
	switch m.tags.Kind() {
	case page.StatusLoading:
		return sidebar
	case page.StatusLoadingSlowly:
		return sidebar.Append(page.LoadingIcon())
	case page.StatusFailed:
		return sidebar.Append(page.LoadFailed("tags"))
	}
	tags, _ := m.tags.Value()
	list := view.El("div").Class("tag-list")
	for _, t := range tags {
		list.Append(
			view.El("a", view.Text(t.String())).
				Class("tag-pill tag-default").
				OnActivate(TagSelected{Tag: t}),
		)
	}
	return sidebar.Append(list)
}
