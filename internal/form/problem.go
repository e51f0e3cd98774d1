package form

import "conduit/internal/entity"

// Problem is a user-visible form error: either a field that failed local
// validation or a message the server sent back.
type Problem struct {
	field   string // empty for server errors
	message string
}

// InvalidField builds a local validation problem for a field key.
func InvalidField(key, message string) Problem {
	return Problem{field: key, message: message}
}

// ServerError builds a problem from a backend failure message.
func ServerError(message string) Problem {
	return Problem{message: message}
}

// ServerErrors wraps request-layer failure messages as problems.
func ServerErrors(msgs []entity.ErrorMessage) []Problem {
	out := make([]Problem, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ServerError(m.String()))
	}
	return out
}

// Field returns the offending field key, or "" for a server error.
func (p Problem) Field() string { return p.field }

// Message returns the human message regardless of variant.
func (p Problem) Message() string { return p.message }

// IsServerError reports whether the problem came from the backend.
func (p Problem) IsServerError() bool { return p.field == "" }
