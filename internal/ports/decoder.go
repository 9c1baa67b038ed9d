package ports

import "github.com/roastedbeans/modi-app/internal/domain"

// FrameDecoder turns extracted frames into structured records. It is an
// external collaborator: the pipeline forwards every valid frame to it
// and treats a nil result as a non-fatal decode miss.
//
// Implementations own the extraction statistics and the cellular state
// snapshot; the pipeline only reads them.
type FrameDecoder interface {
	// Decode parses one frame. hdlcEncoded indicates the frame bytes
	// still carry HDLC escaping; hasCRC indicates a trailing CRC is
	// assumed present. Returns nil when the frame yields no record.
	Decode(frame []byte, hdlcEncoded, hasCRC bool) *domain.Record

	// ResetStatistics clears the decoder's counters at the start of a
	// new ingestion run.
	ResetStatistics()

	// ExtractionStatistics returns the decoder's current counters.
	ExtractionStatistics() domain.ExtractionStats

	// CellularState returns the last-known per-technology state.
	CellularState() domain.CellularState
}
