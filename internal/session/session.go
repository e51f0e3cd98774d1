// Package session tracks the current authentication state, either Guest or
// a logged-in Viewer, and persists it in a single local storage slot.
package session

import "conduit/internal/entity"

// Session is the current auth state.
type Session struct {
	viewer *entity.Viewer
}

// Guest is the unauthenticated session.
func Guest() Session { return Session{} }

// LoggedIn wraps an authenticated viewer.
func LoggedIn(v entity.Viewer) Session { return Session{viewer: &v} }

// FromStored builds a session from the storage slot; nil means Guest.
func FromStored(v *entity.Viewer) Session {
	if v == nil {
		return Guest()
	}
	return LoggedIn(*v)
}

// Viewer returns the logged-in viewer, if any.
func (s Session) Viewer() (entity.Viewer, bool) {
	if s.viewer == nil {
		return entity.Viewer{}, false
	}
	return *s.viewer, true
}

// ViewerRef returns the viewer as the nil-able decoder context.
func (s Session) ViewerRef() *entity.Viewer { return s.viewer }

// Credentials returns the request-layer identity, if logged in.
func (s Session) Credentials() (entity.Credentials, bool) {
	if s.viewer == nil {
		return entity.Credentials{}, false
	}
	return s.viewer.Credentials(), true
}

// LoggedIn reports whether a viewer is present.
func (s Session) LoggedIn() bool { return s.viewer != nil }
