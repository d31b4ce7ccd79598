package tagmatch

import "errors"

var (
	// ErrNoTags is returned when no non-empty tags are supplied.
	ErrNoTags = errors.New("tags required")

	// ErrNoItems is returned when no candidate items are supplied.
	ErrNoItems = errors.New("items required")
)
