package domain

// ExtractionStats holds the monotonically increasing counters for one
// ingestion run. The pipeline resets them at the start of a run and only
// the pipeline's driving goroutine mutates them.
type ExtractionStats struct {
	// TotalFrames is the number of frames handed to the decoder.
	TotalFrames uint64 `json:"total_frames"`

	// ParsedFrames is the number of frames the decoder produced a
	// result for.
	ParsedFrames uint64 `json:"parsed_frames"`

	// Per-technology extraction counts, owned by the decoder.
	GSMExtracted  uint64 `json:"gsm_extracted"`
	UMTSExtracted uint64 `json:"umts_extracted"`
	LTEExtracted  uint64 `json:"lte_extracted"`
	NRExtracted   uint64 `json:"nr_extracted"`

	// SystemMessages is the number of system/debug messages decoded.
	SystemMessages uint64 `json:"system_messages"`

	// EventsExtracted is the number of event records decoded.
	EventsExtracted uint64 `json:"events_extracted"`
}

// RATState is the last-known status snapshot for one radio access
// technology, owned and updated by the decoder collaborator.
type RATState struct {
	// CellID identifies the serving cell.
	CellID string `json:"cell_id"`

	// Channel is the absolute radio frequency channel number
	// (ARFCN/UARFCN/EARFCN depending on the technology).
	Channel uint32 `json:"channel"`

	// Band is the human-readable band label.
	Band string `json:"band"`
}

// CellularState is the per-technology state snapshot reported alongside
// progress and in the final report. Nil entries mean the technology has
// not been observed in the stream.
type CellularState struct {
	GSM  *RATState `json:"gsm,omitempty"`
	UMTS *RATState `json:"umts,omitempty"`
	LTE  *RATState `json:"lte,omitempty"`
	NR   *RATState `json:"nr,omitempty"`
}
