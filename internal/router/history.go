package router

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Navigator is the URL/history collaborator. Push adds an entry and lets
// the change observer re-emit the parsed route; ScrollToTop requests a
// viewport reset from the host.
type Navigator interface {
	Push(r Route)
	ScrollToTop()
}

// History is the in-process Navigator: it records the URL stack and feeds
// every change back through the observer callback, the way the browser's
// history events would.
type History struct {
	mu       sync.Mutex
	stack    []string
	onChange func(Route)
	log      logrus.FieldLogger
}

// NewHistory builds a history whose change observer is onChange. The
// callback fires on every Push, after the entry is recorded.
func NewHistory(onChange func(Route), logger logrus.FieldLogger) *History {
	return &History{
		onChange: onChange,
		log:      logger.WithField("component", "history"),
	}
}

// Push records the route's URL and notifies the observer with the re-parsed
// route.
func (h *History) Push(r Route) {
	path := r.Path()

	h.mu.Lock()
	h.stack = append(h.stack, path)
	h.mu.Unlock()

	h.log.WithField("path", path).Debug("URL pushed")
	if h.onChange != nil {
		h.onChange(ParseRoute(path))
	}
}

// ScrollToTop is a host concern; the engine only requests it.
func (h *History) ScrollToTop() {
	h.log.Debug("Scroll to top requested")
}

// Current returns the top of the URL stack, or "" when empty.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return ""
	}
	return h.stack[len(h.stack)-1]
}

// Stack returns a copy of the pushed URL history. Used by tests.
func (h *History) Stack() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.stack))
	copy(out, h.stack)
	return out
}
