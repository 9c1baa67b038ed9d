package domain

import "errors"

// Skip conditions of the ingestion pipeline. Their messages double as
// Outcome.Reason values, so callers on the JSON boundary can tell the
// two apart by string as well as with errors.Is.
var (
	// ErrTooSmall is reported when a capture file is below the
	// minimum-size gate.
	ErrTooSmall = errors.New("file too small")

	// ErrUnreadable is reported when a capture file does not exist or
	// cannot be opened.
	ErrUnreadable = errors.New("file could not be read")
)
