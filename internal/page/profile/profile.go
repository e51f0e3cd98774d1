// Package profile is the author page: the profile header with its follow
// button and a feed switched between the author's own articles and their
// favorites.
package profile

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

// perPage is the profile feed page size, deliberately smaller than home's.
const perPage = 5

type tab int

const (
	tabMyArticles tab = iota
	tabFavorited
)

// Model is the profile page state.
type Model struct {
	deps     page.Deps
	session  session.Session
	username entity.Username
	tab      tab
	pageNum  entity.PageNumber
	author   page.Status[entity.Author]
	feed     page.Status[feed.Model]
	errors   []entity.ErrorMessage
}

// Msg marks profile-page messages.
type Msg interface{ profileMsg() }

type msg struct{}

func (msg) profileMsg() {}

// AuthorLoaded completes the profile header fetch.
type AuthorLoaded struct {
	msg
	Author entity.Author
	Errs   []entity.ErrorMessage
}

// FeedLoaded completes an article-list fetch for the given page.
type FeedLoaded struct {
	msg
	Page     entity.PageNumber
	Articles entity.PaginatedList[entity.Article]
	Errs     []entity.ErrorMessage
}

type SlowLoadPassed struct{ msg }

// MyArticlesSelected switches to the author's own articles.
type MyArticlesSelected struct{ msg }

// FavoritedSelected switches to the author's favorites.
type FavoritedSelected struct{ msg }

type PageSelected struct {
	msg
	Page entity.PageNumber
}

// FollowClicked toggles following the author.
type FollowClicked struct{ msg }

type FollowCompleted struct {
	msg
	Author entity.Author
	Errs   []entity.ErrorMessage
}

type FavoriteClicked struct {
	msg
	Slug entity.Slug
}

type FavoriteCompleted struct {
	msg
	Article entity.Article
	Errs    []entity.ErrorMessage
}

type DismissErrors struct{ msg }

// Init fires the author and feed fetches in parallel.
func Init(deps page.Deps, sess session.Session, username entity.Username) (*Model, []program.Cmd) {
	m := &Model{
		deps:     deps,
		session:  sess,
		username: username,
		pageNum:  entity.FirstPage,
		author:   page.Loading[entity.Author](),
		feed:     page.Loading[feed.Model](),
	}
	client := deps.API
	viewer := sess.ViewerRef()
	return m, []program.Cmd{
		func(ctx context.Context) program.Msg {
			author, errs := client.GetProfile(ctx, viewer, username)
			return AuthorLoaded{Author: author, Errs: errs}
		},
		m.fetchFeed(m.pageNum),
		program.Tick(deps.SlowLoad, SlowLoadPassed{}),
	}
}

func (m *Model) Session() session.Session { return m.session }

func (m *Model) fetchFeed(p entity.PageNumber) program.Cmd {
	req := api.FeedRequest{Page: p, PerPage: perPage}
	if m.tab == tabFavorited {
		req.Favorited = m.username
	} else {
		req.Author = m.username
	}
	client := m.deps.API
	viewer := m.session.ViewerRef()
	return func(ctx context.Context) program.Msg {
		articles, errs := client.ListArticles(ctx, viewer, req)
		return FeedLoaded{Page: p, Articles: articles, Errs: errs}
	}
}

func (m *Model) refetch() []program.Cmd {
	m.feed = page.Loading[feed.Model]()
	return []program.Cmd{
		m.fetchFeed(m.pageNum),
		program.Tick(m.deps.SlowLoad, SlowLoadPassed{}),
	}
}

// Update advances the page, dropping stale completions.
func (m *Model) Update(raw program.Msg) []program.Cmd {
	switch msg := raw.(type) {
	case AuthorLoaded:
		if !m.author.IsLoading() {
			m.deps.Log.Debug("Dropping stale author completion")
			return nil
		}
		if msg.Errs != nil {
			m.author = page.Failed[entity.Author]()
			m.errors = msg.Errs
			return nil
		}
		m.author = page.Loaded(msg.Author)

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
		m.author = m.author.SlowedDown()
		m.feed = m.feed.SlowedDown()

	case MyArticlesSelected:
		m.tab = tabMyArticles
		m.pageNum = entity.FirstPage
		return m.refetch()

	case FavoritedSelected:
		m.tab = tabFavorited
		m.pageNum = entity.FirstPage
		return m.refetch()

	case PageSelected:
		m.pageNum = msg.Page
		m.deps.Nav.ScrollToTop()
		return m.refetch()

	case FollowClicked:
		return m.toggleFollow()

	case FollowCompleted:
		if msg.Errs != nil {
			m.errors = msg.Errs
			return nil
		}
		if _, ok := m.author.Value(); ok {
			m.author = page.Loaded(msg.Author)
		}

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

func (m *Model) toggleFollow() []program.Cmd {
	viewer, ok := m.session.Viewer()
	if !ok {
		m.deps.Nav.Push(router.Login())
		return nil
	}
	author, ok := m.author.Value()
	if !ok || author.IsViewer() {
		return nil
	}
	client := m.deps.API
	username := m.username
	following := author.Following()
	return []program.Cmd{func(ctx context.Context) program.Msg {
		var out entity.Author
		var errs []entity.ErrorMessage
		if following {
			out, errs = client.Unfollow(ctx, viewer, username)
		} else {
			out, errs = client.Follow(ctx, viewer, username)
		}
		return FollowCompleted{Author: out, Errs: errs}
	}}
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
	root := view.El("div").Class("profile-page").Append(
		page.ErrorBanner(m.errors, DismissErrors{}),
		m.viewHeader(),
		m.viewTabs(),
		m.viewFeed(),
	)
	return root
}

func (m *Model) viewHeader() *view.Node {
	switch m.author.Kind() {
	case page.StatusLoading:
		return view.El("span")
	case page.StatusLoadingSlowly:
		return page.LoadingIcon()
	case page.StatusFailed:
		return page.LoadFailed("profile")
	}
	author, _ := m.author.Value()
	p := author.Profile()

	header := view.El("div").Class("user-info").Append(
		view.El("img").Attr("src", p.Avatar.Src()).Class("user-img"),
		view.El("h4", view.Text(p.Username.String())),
	)
	if p.Bio != nil {
		header.Append(view.El("p", view.Text(*p.Bio)))
	}

	switch {
	case author.IsViewer():
		header.Append(
			view.El("a", view.Text("Edit Profile Settings")).
				Class("btn btn-sm btn-outline-secondary action-btn").
				Attr("href", "/settings"),
		)
	case author.Following():
		header.Append(
			view.El("button", view.Text("Unfollow "+p.Username.String())).
				Class("btn btn-sm action-btn btn-secondary").
				OnActivate(FollowClicked{}),
		)
	default:
		header.Append(
			view.El("button", view.Text("Follow "+p.Username.String())).
				Class("btn btn-sm action-btn btn-outline-secondary").
				OnActivate(FollowClicked{}),
		)
	}
	return header
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
	return view.El("div").Class("articles-toggle").Append(
		view.El("ul").Class("nav nav-pills outline-active").Append(
			item("My Articles", m.tab == tabMyArticles, MyArticlesSelected{}),
			item("Favorited Articles", m.tab == tabFavorited, FavoritedSelected{}),
		),
	)
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
