package ports

// ByteSource presents an ordered list of capture files as one readable
// byte stream. Implementations own the active file handle and select
// transparent decompression per file.
type ByteSource interface {
	// Read returns up to n bytes from the active file. It returns an
	// empty slice when the active file is exhausted, when a transient
	// read error occurs, or when no file is active. It never advances
	// to the next file on its own.
	Read(n int) []byte

	// Advance closes the active handle and opens the next pending
	// file. When no pending file remains the source becomes
	// permanently unavailable and Advance returns nil.
	Advance() error

	// Available reports whether the source may still yield data.
	// Once false it never becomes true again.
	Available() bool

	// Name returns the path of the active file, empty when none.
	Name() string

	// Close idempotently releases the active handle. Safe to call
	// multiple times and after exhaustion.
	Close() error
}
