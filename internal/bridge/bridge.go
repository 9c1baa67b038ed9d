// Package bridge serializes ingestion outcomes and capture listings to
// JSON for a text-based calling application. Byte-valued fields cross
// the boundary as hex strings and timestamps as RFC 3339 strings.
//
// A Bridge is an explicitly constructed, caller-owned value; there is no
// process-wide instance. Every method returns a JSON document, never an
// error: failures become an "error" field in the payload.
package bridge

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/roastedbeans/modi-app/internal/capture"
	"github.com/roastedbeans/modi-app/internal/domain"
	"github.com/roastedbeans/modi-app/internal/ports"
)

// Bridge exposes the ingestion pipeline and directory listing over a
// JSON boundary.
type Bridge struct {
	pipeline *capture.Pipeline
	ext      string
	minSize  int64
	logger   ports.Logger
}

// New creates a bridge around the given pipeline. ext and minSize drive
// the directory listing filter. A nil pipeline yields a listing-only
// bridge; IngestFile on it reports an error document.
func New(pipeline *capture.Pipeline, ext string, minSize int64, logger ports.Logger) *Bridge {
	return &Bridge{pipeline: pipeline, ext: ext, minSize: minSize, logger: logger}
}

// outcomeJSON is the boundary shape of a domain.Outcome.
type outcomeJSON struct {
	Status   string      `json:"status"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
	Metadata *reportJSON `json:"metadata,omitempty"`
}

// reportJSON is the boundary shape of a domain.Report.
type reportJSON struct {
	FilePath     string                 `json:"file_path"`
	TotalBytes   int64                  `json:"total_bytes"`
	TotalChunks  int64                  `json:"total_chunks"`
	AvgChunkSize float64                `json:"avg_chunk_size"`
	HexSamples   []string               `json:"hex_samples"`
	Stats        domain.ExtractionStats `json:"extraction_stats"`
	Cellular     domain.CellularState   `json:"cellular_state"`
	Samples      []recordJSON           `json:"sample_data"`
}

// recordJSON is the boundary shape of a domain.Record; the payload is
// hex, the timestamp RFC 3339.
type recordJSON struct {
	Timestamp  string `json:"timestamp,omitempty"`
	Technology string `json:"technology,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Payload    string `json:"payload"`
}

type captureJSON struct {
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size"`
	ModifiedAt time.Time `json:"modified"`
}

type listingJSON struct {
	Directory string        `json:"directory"`
	Found     int           `json:"files_found"`
	Files     []captureJSON `json:"files"`
}

// IngestFile runs the pipeline on path and returns the outcome as JSON.
func (b *Bridge) IngestFile(ctx context.Context, path string) string {
	if b.pipeline == nil {
		b.logger.Error("ingest requested on a listing-only bridge", ports.String("file", path))
		return b.marshal(map[string]string{"error": "no ingestion pipeline configured"})
	}
	out := b.pipeline.Ingest(ctx, path)

	doc := outcomeJSON{Status: string(out.Status)}
	switch out.Status {
	case domain.StatusCompleted:
		doc.Message = out.Report.Summary()
	case domain.StatusSkipped, domain.StatusFailed:
		doc.Error = out.Reason
	}
	if out.Report != nil {
		doc.Metadata = toReportJSON(out.Report)
	}
	return b.marshal(doc)
}

// ListCaptures enumerates matching capture files under dir as JSON.
func (b *Bridge) ListCaptures(dir string) string {
	files, err := capture.ListCaptures(dir, b.ext, b.minSize)
	if err != nil {
		b.logger.Warn("capture listing failed", ports.String("dir", dir), ports.Err(err))
		return b.marshal(map[string]string{"error": err.Error()})
	}

	doc := listingJSON{Directory: dir, Found: len(files), Files: make([]captureJSON, 0, len(files))}
	for _, f := range files {
		doc.Files = append(doc.Files, captureJSON{
			Path:       f.Path,
			SizeBytes:  f.SizeBytes,
			ModifiedAt: f.ModifiedAt,
		})
	}
	return b.marshal(doc)
}

func toReportJSON(r *domain.Report) *reportJSON {
	doc := &reportJSON{
		FilePath:     r.FilePath,
		TotalBytes:   r.TotalBytes,
		TotalChunks:  r.TotalChunks,
		AvgChunkSize: r.AvgChunkSize,
		HexSamples:   r.HexSamples,
		Stats:        r.Stats,
		Cellular:     r.Cellular,
		Samples:      make([]recordJSON, 0, len(r.Samples)),
	}
	for _, s := range r.Samples {
		rec := recordJSON{
			Technology: s.Technology,
			Summary:    s.Summary,
			Payload:    hex.EncodeToString(s.Payload),
		}
		if s.Timestamp != 0 {
			rec.Timestamp = time.Unix(0, s.Timestamp).UTC().Format(time.RFC3339Nano)
		}
		doc.Samples = append(doc.Samples, rec)
	}
	return doc
}

func (b *Bridge) marshal(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		b.logger.Error("boundary marshal failed", ports.Err(err))
		return `{"error":"result could not be serialized"}`
	}
	return string(data)
}
