// Package router maps between the closed set of application routes and URL
// paths, and defines the navigation contract with the host's URL/history
// primitive.
package router

import (
	"strings"

	"conduit/internal/entity"
)

// Kind enumerates the closed route set.
type Kind int

const (
	KindHome Kind = iota
	KindRoot
	KindLogin
	KindLogout
	KindRegister
	KindSettings
	KindArticle
	KindProfile
	KindNewArticle
	KindEditArticle
	KindNotFound
)

// Route is one destination in the application, possibly carrying a slug or
// username segment.
type Route struct {
	kind     Kind
	slug     entity.Slug
	username entity.Username
}

func Home() Route     { return Route{kind: KindHome} }
func Root() Route     { return Route{kind: KindRoot} }
func Login() Route    { return Route{kind: KindLogin} }
func Logout() Route   { return Route{kind: KindLogout} }
func Register() Route { return Route{kind: KindRegister} }
func Settings() Route { return Route{kind: KindSettings} }
func NotFound() Route { return Route{kind: KindNotFound} }

func Article(s entity.Slug) Route        { return Route{kind: KindArticle, slug: s} }
func Profile(u entity.Username) Route    { return Route{kind: KindProfile, username: u} }
func NewArticle() Route                  { return Route{kind: KindNewArticle} }
func EditArticle(s entity.Slug) Route    { return Route{kind: KindEditArticle, slug: s} }

func (r Route) Kind() Kind                { return r.kind }
func (r Route) Slug() entity.Slug         { return r.slug }
func (r Route) Username() entity.Username { return r.username }

// ParseRoute maps a URL path onto a route. Unknown heads and missing
// required segments yield NotFound; a trailing empty segment falls back to
// the parent (so "/editor/" is NewArticle while "/profile/" is NotFound).
func ParseRoute(path string) Route {
	segments := splitPath(path)
	if len(segments) == 0 {
		return Home()
	}

	switch segments[0] {
	case "login":
		if len(segments) == 1 {
			return Login()
		}
	case "logout":
		if len(segments) == 1 {
			return Logout()
		}
	case "register":
		if len(segments) == 1 {
			return Register()
		}
	case "settings":
		if len(segments) == 1 {
			return Settings()
		}
	case "editor":
		if len(segments) == 1 {
			return NewArticle()
		}
		if len(segments) == 2 {
			return EditArticle(entity.Slug(segments[1]))
		}
	case "article":
		if len(segments) == 2 {
			return Article(entity.Slug(segments[1]))
		}
	case "profile":
		if len(segments) == 2 {
			return Profile(entity.Username(segments[1]))
		}
	}
	return NotFound()
}

// Path renders the route back into a URL path with a leading slash.
// NotFound has no URL of its own; it renders the "/not-found" sentinel,
// which no parse arm claims, so it re-parses as NotFound rather than
// aliasing a real page.
func (r Route) Path() string {
	var segments []string
	switch r.kind {
	case KindHome, KindRoot:
	case KindLogin:
		segments = []string{"login"}
	case KindLogout:
		segments = []string{"logout"}
	case KindRegister:
		segments = []string{"register"}
	case KindSettings:
		segments = []string{"settings"}
	case KindArticle:
		segments = []string{"article", r.slug.String()}
	case KindProfile:
		segments = []string{"profile", r.username.String()}
	case KindNewArticle:
		segments = []string{"editor"}
	case KindEditArticle:
		segments = []string{"editor", r.slug.String()}
	case KindNotFound:
		segments = []string{"not-found"}
	}
	return "/" + strings.Join(segments, "/")
}

// splitPath breaks a path into its non-empty segments.
func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
