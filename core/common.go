package core

import (
	"time"
)

// The ID types are plain aliases. Validation of book IDs happens in the lending package before any event is built.
type (
	BookIDString      = string
	ReaderIDString    = string
	EventTypeString   = string
	FailureInfoString = string
	OccurredAtTS      = time.Time
)

// ToOccurredAt normalizes to UTC at microsecond precision, so timestamps survive a JSON round trip unchanged.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
