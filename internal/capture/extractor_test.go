package capture

import (
	"bytes"
	"testing"

	"github.com/roastedbeans/modi-app/internal/domain"
)

// stream builds a well-formed capture stream: a delimiter, then each
// payload followed by a delimiter.
func stream(payloads ...[]byte) []byte {
	out := []byte{domain.FrameDelimiter}
	for _, p := range payloads {
		out = append(out, p...)
		out = append(out, domain.FrameDelimiter)
	}
	return out
}

// feed pushes data through Extract in chunks of the given size, carrying
// the tail across chunk boundaries the way the pipeline does.
func feed(data []byte, chunkSize int) [][]byte {
	var frames [][]byte
	var tail []byte
	for off := 0; off < len(data); off += chunkSize {
		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		combined := append(append([]byte(nil), tail...), data[off:end]...)
		var got [][]byte
		got, tail = Extract(combined)
		frames = append(frames, got...)
	}
	return frames
}

func framesEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestExtractFewDelimiters(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"no delimiter", []byte("no boundaries here")},
		{"one delimiter", []byte{'a', 'b', domain.FrameDelimiter, 'c', 'd'}},
		{"only delimiter", []byte{domain.FrameDelimiter}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, tail := Extract(tt.buf)
			if len(frames) != 0 {
				t.Fatalf("expected no frames, got %d", len(frames))
			}
			if !bytes.Equal(tail, tt.buf) {
				t.Fatalf("tail = %x, want entire input %x", tail, tt.buf)
			}
		})
	}
}

func TestExtractDropsUndersizedCandidate(t *testing.T) {
	buf := stream([]byte("AB"), []byte("XYZ123"))

	frames, tail := Extract(buf)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if string(frames[0]) != "XYZ123" {
		t.Fatalf("frame = %q, want XYZ123", frames[0])
	}
	if !bytes.Equal(tail, []byte{domain.FrameDelimiter}) {
		t.Fatalf("tail = %x, want final delimiter", tail)
	}
}

func TestExtractSizeWindow(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{domain.MinFrameSize - 1, 0},
		{domain.MinFrameSize, 1},
		{domain.MaxFrameSize, 1},
		{domain.MaxFrameSize + 1, 0},
	}
	for _, tt := range tests {
		payload := bytes.Repeat([]byte{0x42}, tt.size)
		frames, _ := Extract(stream(payload))
		if len(frames) != tt.want {
			t.Fatalf("size %d: got %d frames, want %d", tt.size, len(frames), tt.want)
		}
	}
}

func TestExtractChunkBoundaryIndependence(t *testing.T) {
	payloads := [][]byte{
		[]byte("abc"),
		bytes.Repeat([]byte{0x11}, 500),
		[]byte("hello-world"),
		bytes.Repeat([]byte{0x22}, 4095),
		[]byte("tail-frame"),
	}
	data := stream(payloads...)

	whole := feed(data, len(data))
	if !framesEqual(whole, payloads) {
		t.Fatalf("whole-buffer feed produced %d frames, want %d", len(whole), len(payloads))
	}

	for _, chunkSize := range []int{1, 7, 64, 4096} {
		got := feed(data, chunkSize)
		if !framesEqual(got, whole) {
			t.Fatalf("chunk size %d changed the emitted frames", chunkSize)
		}
	}
}

func TestExtractFrameLargerThanChunk(t *testing.T) {
	// An 8000-byte frame fed in 4096-byte chunks must be reassembled
	// from the carried tail once its closing delimiter arrives.
	payload := bytes.Repeat([]byte{0x5A}, 8000)
	data := stream(payload)

	frames := feed(data, 4096)
	if len(frames) != 1 {
		t.Fatalf("expected 1 reassembled frame, got %d", len(frames))
	}
	if len(frames[0]) != 8000 {
		t.Fatalf("reassembled frame is %d bytes, want 8000", len(frames[0]))
	}
	if !bytes.Equal(frames[0], payload) {
		t.Fatal("reassembled frame corrupted")
	}
}

func TestExtractOversizedSpanningFrameDiscarded(t *testing.T) {
	// A 10000-byte candidate spans chunks, is reassembled, and is then
	// rejected by the size window without disturbing its neighbors.
	data := stream(bytes.Repeat([]byte{0x33}, 10000), []byte("after"))

	frames := feed(data, 4096)
	if len(frames) != 1 {
		t.Fatalf("expected only the trailing frame, got %d frames", len(frames))
	}
	if string(frames[0]) != "after" {
		t.Fatalf("frame = %q, want after", frames[0])
	}
}

func TestExtractDoesNotAliasInput(t *testing.T) {
	buf := stream([]byte("abcdef"))
	frames, tail := Extract(buf)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	for i := range buf {
		buf[i] = 0xFF
	}
	if string(frames[0]) != "abcdef" {
		t.Fatal("frame aliases the input buffer")
	}
	if tail[0] != domain.FrameDelimiter {
		t.Fatal("tail aliases the input buffer")
	}
}

func TestFallbackMatchesPrimaryOnWellFormedInput(t *testing.T) {
	data := stream(
		[]byte("AB"), // undersized, dropped by both
		[]byte("abc"),
		bytes.Repeat([]byte{0x77}, 1024),
		[]byte("xyz123"),
	)

	primary, _ := scanFrames(data)
	fallback, _ := splitFrames(data)
	if !framesEqual(primary, fallback) {
		t.Fatalf("strategies disagree: primary %d frames, fallback %d frames",
			len(primary), len(fallback))
	}
}

func TestLeadingFragmentNeverEmitted(t *testing.T) {
	// Bytes before the first delimiter are dropped by both strategies.
	buf := append([]byte("garbage"), stream([]byte("payload"))...)

	primary, _ := scanFrames(buf)
	fallback, _ := splitFrames(buf)
	for _, frames := range [][][]byte{primary, fallback} {
		if len(frames) != 1 || string(frames[0]) != "payload" {
			t.Fatalf("leading fragment leaked: %q", frames)
		}
	}
}

func TestSplitFramesKeepsFinalSegmentAsTail(t *testing.T) {
	buf := stream([]byte("abc"))
	buf = append(buf, []byte("partial")...)

	frames, tail := splitFrames(buf)
	if len(frames) != 1 || string(frames[0]) != "abc" {
		t.Fatalf("frames = %q", frames)
	}
	if string(tail) != "partial" {
		t.Fatalf("tail = %q, want partial", tail)
	}
}
