// Package page holds what every page model shares: the collaborator bundle,
// the remote-loading Status type, the global messages, and the error-banner
// view helpers.
package page

import (
	"time"

	"github.com/sirupsen/logrus"

	"conduit/internal/api"
	"conduit/internal/router"
	"conduit/internal/session"
)

// Deps bundles the collaborators a page needs. The shell builds it once and
// hands it to every page it constructs.
type Deps struct {
	API      *api.Client
	Nav      router.Navigator
	Store    session.Store
	SlowLoad time.Duration
	Log      logrus.FieldLogger
}

// RouteChanged is the global event emitted by the URL change observer.
type RouteChanged struct {
	Route router.Route
}

// SessionChanged announces a new auth state: after login, register, or
// logout.
type SessionChanged struct {
	Session session.Session
}
