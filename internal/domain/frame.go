package domain

// FrameDelimiter is the HDLC flag byte that bounds every frame in a
// capture stream. The closing delimiter of one frame is the opening
// delimiter of the next.
const FrameDelimiter = 0x7E

// Frame size window. Candidates outside the window are discarded during
// extraction; they are not errors and are not counted as failures.
const (
	// MinFrameSize is the smallest payload accepted between delimiters.
	MinFrameSize = 3

	// MaxFrameSize is the largest payload accepted between delimiters.
	MaxFrameSize = 8192
)

// ValidFrameSize reports whether a candidate of n bytes falls inside the
// accepted frame size window.
func ValidFrameSize(n int) bool {
	return n >= MinFrameSize && n <= MaxFrameSize
}

// Record is a single decoded entry returned by the frame decoder.
// The pipeline treats it as opaque apart from retaining a capped number
// of samples for the final report.
type Record struct {
	// Timestamp is the decoder-assigned time of the entry in unix
	// nanoseconds, 0 when the payload carried none.
	Timestamp int64

	// Technology is the radio access technology the entry belongs to
	// (e.g. "gsm", "umts", "lte", "nr"), empty when not applicable.
	Technology string

	// Summary is a short human-readable description of the entry.
	Summary string

	// Payload is the raw decoded payload. Rendered as a hex string at
	// the serialization boundary.
	Payload []byte
}
