package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/roastedbeans/modi-app/internal/adapters/diag"
	fsAdapter "github.com/roastedbeans/modi-app/internal/adapters/fs"
	logAdapter "github.com/roastedbeans/modi-app/internal/adapters/log"
	"github.com/roastedbeans/modi-app/internal/bridge"
	"github.com/roastedbeans/modi-app/internal/capture"
	"github.com/roastedbeans/modi-app/internal/cliconfig"
	"github.com/roastedbeans/modi-app/internal/domain"
	"github.com/roastedbeans/modi-app/internal/ports"
	"github.com/roastedbeans/modi-app/internal/watch"
)

const helpDescription = `
Extract diagnostic frames from cellular modem capture files.

Highlights:
  - Streams captures in fixed-size chunks; handles gzip and bzip2 transparently.
  - Skips undersized files, survives torn frames and mid-stream faults.
  - Emits machine-readable JSON for calling applications with --json.
  - Configure via file ($HOME/.modi/config.toml), MODI_* env vars, or flags.
`

var exampleUsage = strings.TrimSpace(`
  modi ingest /var/captures/session.qmdl
  modi list --dir /var/captures --json
  modi watch --dir /var/captures --min-size-mb 20
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "modi",
		Short:   "Extract diagnostic frames from cellular modem capture files",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}

	// loadConfig resolves the effective configuration with flag > env >
	// file precedence, using the set of explicitly changed flags.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
		cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}

		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}

		return cfg.Validate()
	}

	newPipeline := func() (*capture.Pipeline, ports.Logger) {
		plog := logAdapter.NewZerologAdapterWithLogger(log)
		open := func(path string) ports.ByteSource {
			return fsAdapter.NewByteSource(plog, path)
		}
		p := capture.NewPipeline(capture.Config{
			ChunkSize:         cfg.ChunkSize,
			MinFileSize:       cfg.MinFileSizeBytes(),
			MaxHexSamples:     cfg.MaxHexSamples,
			HexSampleBytes:    cfg.HexSampleBytes,
			ProgressEvery:     cfg.ProgressEvery,
			MaxDecodedSamples: cfg.MaxDecodedSamples,
		}, diag.NewPassthroughDecoder(), open, plog)
		return p, plog
	}

	ingestCmd := &cobra.Command{
		Use:   "ingest <file...>",
		Short: "Process one or more capture files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			p, plog := newPipeline()

			ctx, cancel := signalContext()
			defer cancel()

			if cfg.JSONOutput {
				b := bridge.New(p, cfg.Extension, cfg.MinFileSizeBytes(), plog)
				for _, path := range args {
					fmt.Println(b.IngestFile(ctx, path))
				}
				return nil
			}

			failed := 0
			for _, path := range args {
				out := p.Ingest(ctx, path)
				switch out.Status {
				case domain.StatusCompleted:
					log.Info().Str("file", path).Msg(out.Report.Summary())
				case domain.StatusSkipped:
					log.Warn().Str("file", path).Str("reason", out.Reason).Msg("skipped")
				case domain.StatusFailed:
					log.Error().Str("file", path).Str("reason", out.Reason).Msg("failed")
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List capture files in the capture directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if cfg.CaptureDir == "" {
				return fmt.Errorf("capture directory is required (--dir or MODI_CAPTURE_DIR)")
			}

			if cfg.JSONOutput {
				plog := logAdapter.NewZerologAdapterWithLogger(log)
				b := bridge.New(nil, cfg.Extension, cfg.MinFileSizeBytes(), plog)
				fmt.Println(b.ListCaptures(cfg.CaptureDir))
				return nil
			}

			files, err := capture.ListCaptures(cfg.CaptureDir, cfg.Extension, cfg.MinFileSizeBytes())
			if err != nil {
				return err
			}
			for _, f := range files {
				log.Info().
					Str("file", f.Path).
					Int64("size", f.SizeBytes).
					Time("modified", f.ModifiedAt).
					Msg("capture")
			}
			log.Info().Int("found", len(files)).Str("dir", cfg.CaptureDir).Msg("listing complete")
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the capture directory and ingest files as they settle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if cfg.CaptureDir == "" {
				return fmt.Errorf("capture directory is required (--dir or MODI_CAPTURE_DIR)")
			}
			p, plog := newPipeline()

			ctx, cancel := signalContext()
			defer cancel()

			var b *bridge.Bridge
			if cfg.JSONOutput {
				b = bridge.New(p, cfg.Extension, cfg.MinFileSizeBytes(), plog)
			}

			w := watch.New(watch.Config{
				Dir:           cfg.CaptureDir,
				Ext:           cfg.Extension,
				MinFileSize:   cfg.MinFileSizeBytes(),
				DebounceDelay: cfg.DebounceDelay,
			}, func(path string) {
				if b != nil {
					fmt.Println(b.IngestFile(ctx, path))
					return
				}
				out := p.Ingest(ctx, path)
				if out.Completed() {
					log.Info().Str("file", path).Msg(out.Report.Summary())
				} else {
					log.Warn().Str("file", path).Str("reason", out.Reason).Str("status", string(out.Status)).Msg("not ingested")
				}
			}, plog)

			return w.Run(ctx)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.modi/config.toml)")
	root.PersistentFlags().StringVar(&cfg.CaptureDir, "dir", cfg.CaptureDir, "capture directory")
	root.PersistentFlags().StringVar(&cfg.Extension, "ext", cfg.Extension, "capture file extension")
	root.PersistentFlags().IntVar(&cfg.MinFileSizeMB, "min-size-mb", cfg.MinFileSizeMB, "minimum capture size in MB; smaller files are skipped")
	root.PersistentFlags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "read chunk size in bytes")
	root.PersistentFlags().IntVar(&cfg.MaxDecodedSamples, "max-samples", cfg.MaxDecodedSamples, "maximum decoded entries retained per report")
	root.PersistentFlags().BoolVar(&cfg.JSONOutput, "json", cfg.JSONOutput, "emit machine-readable JSON on stdout")

	watchCmd.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "quiet period before a growing capture is ingested")

	root.AddCommand(ingestCmd, listCmd, watchCmd)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("modi")
		os.Exit(1)
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
