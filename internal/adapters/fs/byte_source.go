package fs

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roastedbeans/modi-app/internal/ports"
)

// ByteSource implements ports.ByteSource over an ordered list of capture
// files. Files are consumed front-to-back, one at a time; compression is
// selected per file by suffix (.gz gzip, .bz2 bzip2, raw otherwise).
//
// The active handle is owned exclusively by the source: it is closed
// before the next file is opened and again by Close.
type ByteSource struct {
	pending   []string
	name      string
	file      *os.File
	gz        *gzip.Reader
	reader    io.Reader
	available bool
	logger    ports.Logger
}

// NewByteSource creates a source over the given paths. No file is opened
// until the first Advance call.
func NewByteSource(logger ports.Logger, paths ...string) *ByteSource {
	return &ByteSource{
		pending:   append([]string(nil), paths...),
		available: true,
		logger:    logger,
	}
}

// Read returns up to n bytes from the active file. An exhausted file, a
// transient read error, or a missing active handle all yield an empty
// result; read errors are logged as I/O warnings, never propagated.
func (s *ByteSource) Read(n int) []byte {
	if s.reader == nil || n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	m, err := s.reader.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("capture read failed",
			ports.String("file", s.name),
			ports.Err(err))
		return nil
	}
	return buf[:m]
}

// Advance closes the active handle and opens the next pending file.
// With no pending file left the source becomes permanently unavailable.
func (s *ByteSource) Advance() error {
	s.closeHandle()

	if len(s.pending) == 0 {
		s.available = false
		return nil
	}

	path := s.pending[0]
	s.pending = s.pending[1:]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("open gzip capture: %w", err)
		}
		s.gz = gz
		s.reader = gz
	case strings.HasSuffix(path, ".bz2"):
		s.reader = bzip2.NewReader(f)
	default:
		s.reader = f
	}

	s.file = f
	s.name = path
	return nil
}

// Available reports whether the source may still yield data. Once the
// pending queue is drained it stays false forever.
func (s *ByteSource) Available() bool {
	return s.available
}

// Name returns the path of the active file, empty when none.
func (s *ByteSource) Name() string {
	if s.reader == nil {
		return ""
	}
	return s.name
}

// Close releases the active handle. Safe to call multiple times and
// after exhaustion.
func (s *ByteSource) Close() error {
	return s.closeHandle()
}

func (s *ByteSource) closeHandle() error {
	var errs []error
	if s.gz != nil {
		if err := s.gz.Close(); err != nil {
			errs = append(errs, err)
		}
		s.gz = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			errs = append(errs, err)
		}
		s.file = nil
	}
	s.reader = nil
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Ensure ByteSource implements ports.ByteSource.
var _ ports.ByteSource = (*ByteSource)(nil)
