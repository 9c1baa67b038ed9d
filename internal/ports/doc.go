// Package ports defines the interfaces (ports) that connect the capture
// ingestion core to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the pipeline needs from external systems
// without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [ByteSource]: Sequential byte access over one or more capture files
//   - [FrameDecoder]: Payload decoding of extracted frames (external
//     collaborator; the pipeline treats it as a black box)
//   - [Logger]: Structured logging abstraction
//
// The application layer (internal/capture) depends only on these
// interfaces. Infrastructure adapters (internal/adapters) implement them
// with concrete implementations (file system, zerolog, ...).
package ports
