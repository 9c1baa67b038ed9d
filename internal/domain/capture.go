package domain

import "time"

// CaptureInfo describes one capture file found by a directory listing.
// Only files matching the extension filter and meeting the minimum-size
// gate are listed.
type CaptureInfo struct {
	// Path is the absolute or directory-relative path of the file.
	Path string

	// SizeBytes is the file size at listing time.
	SizeBytes int64

	// ModifiedAt is the file modification time. Creation time is not
	// portably available, so the modification time stands in for both.
	ModifiedAt time.Time
}
