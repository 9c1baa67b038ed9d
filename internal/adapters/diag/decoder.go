// Package diag holds frame decoder adapters. Payload decoding is an
// external concern; this package only provides the pass-through decoder
// used when no real decoder is wired in.
package diag

import "github.com/roastedbeans/modi-app/internal/domain"

// PassthroughDecoder implements ports.FrameDecoder without interpreting
// frame payloads. It produces no records and keeps empty statistics, so
// the pipeline's own frame and chunk counters remain the only output.
// Useful for framing-only runs and as a stand-in in tests.
type PassthroughDecoder struct{}

// NewPassthroughDecoder creates a decoder that never yields records.
func NewPassthroughDecoder() *PassthroughDecoder {
	return &PassthroughDecoder{}
}

// Decode always reports a decode miss.
func (*PassthroughDecoder) Decode(frame []byte, hdlcEncoded, hasCRC bool) *domain.Record {
	return nil
}

// ResetStatistics is a no-op; the decoder holds no counters.
func (*PassthroughDecoder) ResetStatistics() {}

// ExtractionStatistics returns empty counters.
func (*PassthroughDecoder) ExtractionStatistics() domain.ExtractionStats {
	return domain.ExtractionStats{}
}

// CellularState returns an empty snapshot.
func (*PassthroughDecoder) CellularState() domain.CellularState {
	return domain.CellularState{}
}
