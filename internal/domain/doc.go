// Package domain contains the core domain entities and value objects for
// capture ingestion.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (file system, logging, transport)
// and contains only the types and invariants of the framing pipeline.
//
// # Entities
//
//   - Frame constants: the HDLC flag byte and the valid frame size window
//   - [ExtractionStats]: counters accumulated over one ingestion run
//   - [Report]: the structured result of a completed (or aborted) run
//   - [Outcome]: tagged Completed/Skipped/Failed result of an ingestion call
//   - [CaptureInfo]: a directory-listing entry for a capture file
package domain
