package page

// StatusKind enumerates the remote-loading states.
type StatusKind int

const (
	StatusLoading StatusKind = iota
	StatusLoadingSlowly
	StatusLoaded
	StatusFailed
)

// Status tracks one remote fetch: Loading until completion, LoadingSlowly
// once the slow-load threshold passes, then Loaded or Failed.
type Status[T any] struct {
	kind  StatusKind
	value T
}

// Loading is the initial status.
func Loading[T any]() Status[T] { return Status[T]{kind: StatusLoading} }

// Loaded wraps a successful result.
func Loaded[T any](v T) Status[T] { return Status[T]{kind: StatusLoaded, value: v} }

// Failed marks the fetch as failed.
func Failed[T any]() Status[T] { return Status[T]{kind: StatusFailed} }

func (s Status[T]) Kind() StatusKind { return s.kind }

// Value returns the loaded value, if any.
func (s Status[T]) Value() (T, bool) {
	return s.value, s.kind == StatusLoaded
}

// IsLoading reports whether the fetch is still in flight.
func (s Status[T]) IsLoading() bool {
	return s.kind == StatusLoading || s.kind == StatusLoadingSlowly
}

// SlowedDown moves Loading to LoadingSlowly; any other state is unchanged,
// so a late timer has no visible effect.
func (s Status[T]) SlowedDown() Status[T] {
	if s.kind == StatusLoading {
		s.kind = StatusLoadingSlowly
	}
	return s
}
