package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	CaptureDir        string `toml:"capture_dir"`
	Extension         string `toml:"extension"`
	MinFileSizeMB     int    `toml:"min_file_size_mb"`
	ChunkSize         int    `toml:"chunk_size"`
	MaxHexSamples     int    `toml:"max_hex_samples"`
	HexSampleBytes    int    `toml:"hex_sample_bytes"`
	ProgressEvery     int    `toml:"progress_every"`
	MaxDecodedSamples int    `toml:"max_decoded_samples"`
	DebounceDelay     string `toml:"debounce_delay"`
	JSONOutput        *bool  `toml:"json_output"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.modi/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".modi", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("dir", fc.CaptureDir, &cfg.CaptureDir)
	s.setString("ext", fc.Extension, &cfg.Extension)

	s.setInt("min-size-mb", fc.MinFileSizeMB, &cfg.MinFileSizeMB)
	s.setInt("chunk-size", fc.ChunkSize, &cfg.ChunkSize)
	s.setInt("hex-samples", fc.MaxHexSamples, &cfg.MaxHexSamples)
	s.setInt("hex-sample-bytes", fc.HexSampleBytes, &cfg.HexSampleBytes)
	s.setInt("progress-every", fc.ProgressEvery, &cfg.ProgressEvery)
	s.setInt("max-samples", fc.MaxDecodedSamples, &cfg.MaxDecodedSamples)

	if err := s.setDuration("debounce", fc.DebounceDelay, &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBool("json", fc.JSONOutput, &cfg.JSONOutput)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
