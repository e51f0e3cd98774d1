// Package entity holds the immutable domain values of the client: users,
// articles, comments and the small identifier types they are built from.
// Values are created by the wire decoders (decode.go) or by user input and
// are replaced, never mutated in place.
package entity

// Username identifies a user. It doubles as the profile URL path segment.
type Username string

func (u Username) String() string { return string(u) }

// Slug is the opaque article identifier used in URLs and API paths.
// It round-trips through the router as-is.
type Slug string

func (s Slug) String() string { return string(s) }

// Tag is a single article tag.
type Tag string

func (t Tag) String() string { return string(t) }

// Markdown is a raw markdown article body. The engine passes it through
// untouched; rendering is the host's concern.
type Markdown string

func (m Markdown) String() string { return string(m) }

// ErrorMessage is a human-readable failure description surfaced to the user.
type ErrorMessage string

func (e ErrorMessage) String() string { return string(e) }

// Messages converts plain strings into an ErrorMessage slice.
func Messages(msgs ...string) []ErrorMessage {
	out := make([]ErrorMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ErrorMessage(m))
	}
	return out
}
