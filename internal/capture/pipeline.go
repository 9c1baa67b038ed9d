package capture

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/roastedbeans/modi-app/internal/domain"
	"github.com/roastedbeans/modi-app/internal/ports"
)

// Config holds the tunables of one ingestion pipeline.
type Config struct {
	// ChunkSize is the number of bytes requested per read.
	ChunkSize int

	// MinFileSize is the minimum-size gate: smaller files are skipped
	// before any chunked reading begins.
	MinFileSize int64

	// MaxHexSamples caps the number of hex excerpts retained from the
	// earliest combined buffers of a run.
	MaxHexSamples int

	// HexSampleBytes caps the length of each hex excerpt.
	HexSampleBytes int

	// ProgressEvery is the chunk interval between progress log lines.
	ProgressEvery int

	// MaxDecodedSamples caps the decoded records kept in the report.
	MaxDecodedSamples int
}

// DefaultConfig returns a Config with canonical values.
func DefaultConfig() Config {
	return Config{
		ChunkSize:         4096,
		MinFileSize:       20 << 20, // 20 MiB
		MaxHexSamples:     5,
		HexSampleBytes:    64,
		ProgressEvery:     100,
		MaxDecodedSamples: 10,
	}
}

// SourceOpener constructs a byte source for one capture file. Injected
// so the pipeline stays independent of the file system adapter.
type SourceOpener func(path string) ports.ByteSource

// Pipeline drives the read/extract loop over a single capture file,
// forwarding valid frames to the decoder collaborator and accumulating
// progress statistics.
//
// A Pipeline is single-threaded: one Ingest call owns its source, tail
// buffer, and counters. Independent Pipeline instances may run
// concurrently on different files.
type Pipeline struct {
	cfg    Config
	dec    ports.FrameDecoder
	open   SourceOpener
	logger ports.Logger
}

// NewPipeline creates a pipeline with the given collaborators.
// Zero-valued config fields fall back to their defaults.
func NewPipeline(cfg Config, dec ports.FrameDecoder, open SourceOpener, logger ports.Logger) *Pipeline {
	def := DefaultConfig()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.MinFileSize < 0 {
		cfg.MinFileSize = def.MinFileSize
	}
	if cfg.MaxHexSamples <= 0 {
		cfg.MaxHexSamples = def.MaxHexSamples
	}
	if cfg.HexSampleBytes <= 0 {
		cfg.HexSampleBytes = def.HexSampleBytes
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = def.ProgressEvery
	}
	if cfg.MaxDecodedSamples <= 0 {
		cfg.MaxDecodedSamples = def.MaxDecodedSamples
	}
	return &Pipeline{cfg: cfg, dec: dec, open: open, logger: logger}
}

// Ingest runs one ingestion pass over the capture at path: gate check,
// chunked read/extract loop, decoder forwarding, final statistics.
//
// It always returns a structured Outcome. Files that are missing,
// unopenable, or below the size gate yield Skipped; a fault escaping the
// loop is recovered and yields Failed with the partial report; anything
// else completes with a full report.
func (p *Pipeline) Ingest(ctx context.Context, path string) (out domain.Outcome) {
	report := &domain.Report{FilePath: path}
	var framesSeen, framesParsed uint64

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("ingestion aborted",
				ports.String("file", path),
				ports.Any("panic", r),
				ports.String("stack", string(debug.Stack())))
			p.finalize(report, framesSeen, framesParsed)
			out = domain.Outcome{
				Status: domain.StatusFailed,
				Reason: fmt.Sprintf("ingestion aborted: %v", r),
				Report: report,
			}
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("capture not readable", ports.String("file", path), ports.Err(err))
		return domain.Outcome{Status: domain.StatusSkipped, Reason: domain.ErrUnreadable.Error()}
	}
	if info.Size() < p.cfg.MinFileSize {
		p.logger.Info("capture below minimum size",
			ports.String("file", path),
			ports.Int64("size", info.Size()),
			ports.Int64("min_size", p.cfg.MinFileSize))
		return domain.Outcome{Status: domain.StatusSkipped, Reason: domain.ErrTooSmall.Error()}
	}

	src := p.open(path)
	defer src.Close()
	if err := src.Advance(); err != nil {
		p.logger.Warn("capture open failed", ports.String("file", path), ports.Err(err))
		return domain.Outcome{Status: domain.StatusSkipped, Reason: domain.ErrUnreadable.Error()}
	}

	p.logger.Info("ingestion started",
		ports.String("file", path),
		ports.Int64("size", info.Size()),
		ports.Int("chunk_size", p.cfg.ChunkSize))

	p.dec.ResetStatistics()

	var tail []byte
	for {
		select {
		case <-ctx.Done():
			p.logger.Warn("ingestion canceled", ports.String("file", path), ports.Err(ctx.Err()))
			p.finalize(report, framesSeen, framesParsed)
			return domain.Outcome{Status: domain.StatusFailed, Reason: "ingestion canceled", Report: report}
		default:
		}

		chunk := src.Read(p.cfg.ChunkSize)
		if len(chunk) == 0 {
			break
		}
		report.TotalChunks++
		report.TotalBytes += int64(len(chunk))

		combined := make([]byte, 0, len(tail)+len(chunk))
		combined = append(combined, tail...)
		combined = append(combined, chunk...)

		if len(report.HexSamples) < p.cfg.MaxHexSamples {
			n := len(combined)
			if n > p.cfg.HexSampleBytes {
				n = p.cfg.HexSampleBytes
			}
			report.HexSamples = append(report.HexSamples, hex.EncodeToString(combined[:n]))
		}

		var frames [][]byte
		frames, tail = Extract(combined)
		for _, frame := range frames {
			framesSeen++
			rec := p.dec.Decode(frame, true, true)
			if rec == nil {
				continue
			}
			framesParsed++
			if len(report.Samples) < p.cfg.MaxDecodedSamples {
				report.Samples = append(report.Samples, *rec)
			}
		}

		if report.TotalChunks%int64(p.cfg.ProgressEvery) == 0 {
			p.logProgress(report, framesSeen, framesParsed)
		}
	}

	p.finalize(report, framesSeen, framesParsed)
	p.logger.Info("ingestion complete",
		ports.String("file", path),
		ports.String("summary", report.Summary()))
	return domain.Outcome{Status: domain.StatusCompleted, Report: report}
}

// finalize folds the pipeline-owned counters into the decoder's
// statistics snapshot and computes the derived fields.
func (p *Pipeline) finalize(report *domain.Report, framesSeen, framesParsed uint64) {
	stats, cell := p.decoderSnapshot()
	stats.TotalFrames = framesSeen
	stats.ParsedFrames = framesParsed
	report.Stats = stats
	report.Cellular = cell
	if report.TotalChunks > 0 {
		report.AvgChunkSize = float64(report.TotalBytes) / float64(report.TotalChunks)
	}
}

// decoderSnapshot reads the decoder's counters and cellular state,
// tolerating a collaborator so corrupted that the reads themselves
// panic. finalize also runs inside the Ingest recovery path, where a
// second fault must not escape; the pipeline-owned counters still make
// it into the report when the decoder is unusable.
func (p *Pipeline) decoderSnapshot() (stats domain.ExtractionStats, cell domain.CellularState) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("decoder statistics unavailable", ports.Any("panic", r))
		}
	}()
	stats = p.dec.ExtractionStatistics()
	cell = p.dec.CellularState()
	return stats, cell
}

func (p *Pipeline) logProgress(report *domain.Report, framesSeen, framesParsed uint64) {
	p.logger.Info("ingestion progress",
		ports.String("file", report.FilePath),
		ports.Int64("chunks", report.TotalChunks),
		ports.Int64("bytes", report.TotalBytes),
		ports.Uint64("frames", framesSeen),
		ports.Uint64("parsed", framesParsed),
		ports.Any("cellular", p.dec.CellularState()))
}
