package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (MODI_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("dir", os.Getenv("MODI_CAPTURE_DIR"), &cfg.CaptureDir)
	s.setString("ext", os.Getenv("MODI_EXTENSION"), &cfg.Extension)

	if err := s.setIntFromString("min-size-mb", os.Getenv("MODI_MIN_FILE_SIZE_MB"), &cfg.MinFileSizeMB); err != nil {
		return err
	}
	if err := s.setIntFromString("chunk-size", os.Getenv("MODI_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}
	if err := s.setIntFromString("hex-samples", os.Getenv("MODI_MAX_HEX_SAMPLES"), &cfg.MaxHexSamples); err != nil {
		return err
	}
	if err := s.setIntFromString("hex-sample-bytes", os.Getenv("MODI_HEX_SAMPLE_BYTES"), &cfg.HexSampleBytes); err != nil {
		return err
	}
	if err := s.setIntFromString("progress-every", os.Getenv("MODI_PROGRESS_EVERY"), &cfg.ProgressEvery); err != nil {
		return err
	}
	if err := s.setIntFromString("max-samples", os.Getenv("MODI_MAX_DECODED_SAMPLES"), &cfg.MaxDecodedSamples); err != nil {
		return err
	}

	if err := s.setDuration("debounce", os.Getenv("MODI_DEBOUNCE_DELAY"), &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBoolFromString("json", os.Getenv("MODI_JSON_OUTPUT"), &cfg.JSONOutput)

	return nil
}
