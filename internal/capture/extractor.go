package capture

import (
	"bytes"

	"github.com/roastedbeans/modi-app/internal/domain"
)

// Extract scans buf for delimiter-bounded frames and returns the
// complete frames along with the unresolved tail to prepend to the next
// chunk. It is a pure function of its input: returned slices never alias
// buf.
//
// With fewer than two delimiters no frame can be complete and the whole
// buffer becomes the tail, which handles frames larger than one chunk.
// Otherwise each adjacent delimiter pair bounds a candidate; candidates
// outside the valid size window are dropped. The tail starts at the last
// delimiter so a frame opened at the end of buf can still find its close
// in the next chunk; re-scanning that delimiter is harmless because no
// frame starts and ends at the same position. Bytes before the first
// delimiter are never emitted as a frame.
//
// A panic inside the scan falls back to the split strategy, so
// extraction never stalls and never propagates a fault.
func Extract(buf []byte) (frames [][]byte, tail []byte) {
	defer func() {
		if r := recover(); r != nil {
			frames, tail = splitFrames(buf)
		}
	}()
	return scanFrames(buf)
}

// scanFrames is the primary delimiter-pair scan.
func scanFrames(buf []byte) ([][]byte, []byte) {
	var marks []int
	for i, b := range buf {
		if b == domain.FrameDelimiter {
			marks = append(marks, i)
		}
	}
	if len(marks) < 2 {
		return nil, cloneBytes(buf)
	}

	var frames [][]byte
	for k := 0; k+1 < len(marks); k++ {
		candidate := buf[marks[k]+1 : marks[k+1]]
		if domain.ValidFrameSize(len(candidate)) {
			frames = append(frames, cloneBytes(candidate))
		}
	}
	return frames, cloneBytes(buf[marks[len(marks)-1]:])
}

// splitFrames is the fallback strategy: split on every delimiter, keep
// the final segment as the tail, and size-filter the rest. Unlike the
// primary scan the tail does not retain its opening delimiter; the
// fallback only runs when the primary scan is defective, where not
// stalling matters more than tail parity.
func splitFrames(buf []byte) ([][]byte, []byte) {
	segments := bytes.Split(buf, []byte{domain.FrameDelimiter})
	tail := cloneBytes(segments[len(segments)-1])
	segments = segments[:len(segments)-1]

	// A leading pre-delimiter fragment is not a frame.
	if len(segments) > 0 && len(buf) > 0 && buf[0] != domain.FrameDelimiter {
		segments = segments[1:]
	}

	var frames [][]byte
	for _, seg := range segments {
		if domain.ValidFrameSize(len(seg)) {
			frames = append(frames, cloneBytes(seg))
		}
	}
	return frames, tail
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
