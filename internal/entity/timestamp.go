package entity

import (
	"fmt"
	"time"
)

// Timestamp is an instant parsed from the backend's RFC 3339 strings.
type Timestamp struct {
	t time.Time
}

// ParseTimestamp builds a Timestamp from RFC 3339 text. Fractional seconds
// are accepted.
func ParseTimestamp(raw string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return Timestamp{t: t}, nil
}

// TimestampOf wraps an already-known instant. Used by tests and encoders.
func TimestampOf(t time.Time) Timestamp { return Timestamp{t: t} }

// Time returns the underlying instant.
func (ts Timestamp) Time() time.Time { return ts.t }

// String renders the display form, e.g. "January 2, 2006".
func (ts Timestamp) String() string { return ts.t.Format("January 2, 2006") }
