package domain

import "fmt"

// Report is the structured result of one ingestion run. On a Failed
// outcome it carries the statistics accumulated up to the failure point;
// partial results are preferred over no results.
type Report struct {
	// FilePath is the capture file the run processed.
	FilePath string

	// TotalBytes is the number of payload bytes read from the source.
	TotalBytes int64

	// TotalChunks is the number of non-empty chunk reads.
	TotalChunks int64

	// AvgChunkSize is TotalBytes / TotalChunks, 0 when no chunks were read.
	AvgChunkSize float64

	// HexSamples holds hex-formatted excerpts of the earliest combined
	// buffers of the run, for diagnostics only.
	HexSamples []string

	// Stats are the cumulative extraction counters for the run.
	Stats ExtractionStats

	// Cellular is the decoder's last-known per-technology state.
	Cellular CellularState

	// Samples is a capped set of decoded entries from the run.
	Samples []Record
}

// Summary returns a one-line human-readable description of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("parsed %d/%d frames (gsm: %d, umts: %d, lte: %d, nr: %d, messages: %d) from %d bytes in %d chunks",
		r.Stats.ParsedFrames, r.Stats.TotalFrames,
		r.Stats.GSMExtracted, r.Stats.UMTSExtracted, r.Stats.LTEExtracted, r.Stats.NRExtracted,
		r.Stats.SystemMessages, r.TotalBytes, r.TotalChunks)
}

// OutcomeStatus classifies the result of an ingestion call.
type OutcomeStatus string

const (
	// StatusCompleted means the run processed the file to exhaustion.
	StatusCompleted OutcomeStatus = "completed"

	// StatusSkipped means the file was rejected before chunked reading
	// began (too small, missing, or unopenable).
	StatusSkipped OutcomeStatus = "skipped"

	// StatusFailed means the run aborted mid-stream; the report carries
	// whatever was accumulated before the failure.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome is the tagged result of an ingestion call. Ingest always
// returns an Outcome, never a bare error: the caller can rely on a
// structured result on every path.
type Outcome struct {
	// Status discriminates the variant.
	Status OutcomeStatus

	// Reason explains Skipped and Failed outcomes ("file too small",
	// "file could not be read", a recovered panic message, ...).
	Reason string

	// Report is present on Completed outcomes and, when partial data
	// was accumulated, on Failed outcomes. Nil on Skipped.
	Report *Report
}

// Completed reports whether the run finished normally.
func (o Outcome) Completed() bool { return o.Status == StatusCompleted }
