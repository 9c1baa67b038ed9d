// Package capture implements the stream framing and extraction core:
// HDLC-style frame delimitation with tail carryover across chunk reads,
// the chunked ingestion loop with progress statistics, and the capture
// directory listing.
//
// The package depends only on internal/domain and internal/ports; file
// system access is injected through ports.ByteSource.
package capture
