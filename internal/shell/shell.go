// Package shell is the application frame: it owns the current page, swaps
// pages on route changes, carries the session across them, and wraps every
// page view in the header and footer.
package shell

import (
	"context"
	"fmt"

	"conduit/internal/page"
	"conduit/internal/page/article"
	"conduit/internal/page/editor"
	"conduit/internal/page/home"
	"conduit/internal/page/login"
	"conduit/internal/page/profile"
	"conduit/internal/page/register"
	"conduit/internal/page/settings"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
	"conduit/internal/view"
)

// pager is what the shell needs from every page model.
type pager interface {
	Update(program.Msg) []program.Cmd
	View() *view.Node
	Session() session.Session
}

// Model is the shell state: the route, the page built for it, and the
// session used when no page is mounted.
type Model struct {
	deps    page.Deps
	route   router.Route
	current pager
	session session.Session
}

// New builds the shell on the stored session. No page is mounted until the
// first RouteChanged arrives.
func New(deps page.Deps, sess session.Session) *Model {
	return &Model{deps: deps, route: router.NotFound(), session: sess}
}

// Session returns the live session: the mounted page's if there is one.
func (m *Model) Session() session.Session {
	if m.current != nil {
		return m.current.Session()
	}
	return m.session
}

// Route exposes the current route. Used by tests.
func (m *Model) Route() router.Route { return m.route }

// Page exposes the mounted page model. Used by tests.
func (m *Model) Page() any { return m.current }

// Update routes messages: global events are handled here, page messages are
// forwarded only when their page is still mounted.
func (m *Model) Update(raw program.Msg) []program.Cmd {
	switch msg := raw.(type) {
	case page.RouteChanged:
		return m.mount(msg.Route)

	case page.SessionChanged:
		m.session = msg.Session
		if m.current != nil {
			return m.current.Update(raw)
		}
		// No page is mounted only right after logout; the guest session is
		// in place now, so this home mount sees it.
		m.deps.Nav.Push(router.Home())
		return nil
	}
	return m.forward(raw)
}

// mount swaps in the page for the route, carrying the session forward.
func (m *Model) mount(route router.Route) []program.Cmd {
	sess := m.Session()
	m.route = route
	m.session = sess

	switch route.Kind() {
	case router.KindHome, router.KindRoot:
		p, cmds := home.Init(m.deps, sess)
		m.current = p
		return cmds
	case router.KindLogin:
		p, cmds := login.Init(m.deps, sess)
		m.current = p
		return cmds
	case router.KindLogout:
		m.current = nil
		return m.logout()
	case router.KindRegister:
		p, cmds := register.Init(m.deps, sess)
		m.current = p
		return cmds
	case router.KindSettings:
		p, cmds := settings.Init(m.deps, sess)
		m.current = p
		return cmds
	case router.KindArticle:
		p, cmds := article.Init(m.deps, sess, route.Slug())
		m.current = p
		return cmds
	case router.KindProfile:
		p, cmds := profile.Init(m.deps, sess, route.Username())
		m.current = p
		return cmds
	case router.KindNewArticle:
		p, cmds := editor.InitNew(m.deps, sess)
		m.current = p
		return cmds
	case router.KindEditArticle:
		p, cmds := editor.InitEdit(m.deps, sess, route.Slug())
		m.current = p
		return cmds
	}
	m.current = nil
	return nil
}

// logout clears the stored viewer off the loop and announces the guest
// session. Navigation home happens only once SessionChanged lands, so the
// next page never mounts with the revoked viewer.
func (m *Model) logout() []program.Cmd {
	store := m.deps.Store
	log := m.deps.Log
	return []program.Cmd{func(ctx context.Context) program.Msg {
		if err := store.Clear(); err != nil {
			log.WithError(err).Error("Failed to clear stored viewer")
		}
		return page.SessionChanged{Session: session.Guest()}
	}}
}

// forward delivers a page message to its page, but only while that page is
// mounted. A completion racing a route change lands here after the swap and
// is dropped.
func (m *Model) forward(raw program.Msg) []program.Cmd {
	var ok bool
	switch raw.(type) {
	case home.Msg:
		_, ok = m.current.(*home.Model)
	case article.Msg:
		_, ok = m.current.(*article.Model)
	case editor.Msg:
		_, ok = m.current.(*editor.Model)
	case login.Msg:
		_, ok = m.current.(*login.Model)
	case register.Msg:
		_, ok = m.current.(*register.Model)
	case settings.Msg:
		_, ok = m.current.(*settings.Model)
	case profile.Msg:
		_, ok = m.current.(*profile.Model)
	}
	if !ok {
		m.deps.Log.WithField("msg", fmt.Sprintf("%T", raw)).Debug("Dropping message for unmounted page")
		return nil
	}
	return m.current.Update(raw)
}

// View wraps the page view in the application chrome.
func (m *Model) View() *view.Node {
	body := m.pageView()
	return view.El("div").Append(m.viewHeader(), body, viewFooter())
}

func (m *Model) pageView() *view.Node {
	if m.current != nil {
		return m.current.View()
	}
	if m.route.Kind() == router.KindNotFound {
		return view.El("div").Class("not-found").Append(
			view.El("img").Attr("src", page.ErrorImageURL),
			view.El("h1", view.Text("Not Found")),
		)
	}
	// Blank: logout and the instant before the first route lands.
	return view.El("div")
}

func (m *Model) viewHeader() *view.Node {
	link := func(label, href string, active bool) *view.Node {
		class := "nav-link"
		if active {
			class = "nav-link active"
		}
		return view.El("li", view.El("a", view.Text(label)).Class(class).Attr("href", href)).
			Class("nav-item")
	}

	nav := view.El("ul").Class("nav navbar-nav pull-xs-right").Append(
		link("Home", "/", m.route.Kind() == router.KindHome || m.route.Kind() == router.KindRoot),
	)

	if viewer, ok := m.Session().Viewer(); ok {
		u := viewer.Username()
		nav.Append(
			link("New Article", router.NewArticle().Path(), m.route.Kind() == router.KindNewArticle),
			link("Settings", router.Settings().Path(), m.route.Kind() == router.KindSettings),
			link(u.String(), router.Profile(u).Path(), m.route.Kind() == router.KindProfile && m.route.Username() == u),
			link("Sign out", router.Logout().Path(), false),
		)
	} else {
		nav.Append(
			link("Sign in", router.Login().Path(), m.route.Kind() == router.KindLogin),
			link("Sign up", router.Register().Path(), m.route.Kind() == router.KindRegister),
		)
	}

	return view.El("nav").Class("navbar navbar-light").Append(
		view.El("div").Class("container").Append(
			view.El("a", view.Text("conduit")).Class("navbar-brand").Attr("href", "/"),
			nav,
		),
	)
}

func viewFooter() *view.Node {
	return view.El("footer", view.El("div").Class("container").Append(
		view.El("a", view.Text("conduit")).Class("logo-font").Attr("href", "/"),
		view.El("span", view.Text("An interactive learning project. Code licensed under MIT.")).Class("attribution"),
	))
}
