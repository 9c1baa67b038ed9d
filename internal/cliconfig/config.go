package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultExtension is the capture file extension scanned by default.
const DefaultExtension = ".qmdl"

// Config holds CLI configuration for modi.
type Config struct {
	CaptureDir string
	Extension  string

	MinFileSizeMB     int
	ChunkSize         int
	MaxHexSamples     int
	HexSampleBytes    int
	ProgressEvery     int
	MaxDecodedSamples int

	DebounceDelay time.Duration

	JSONOutput bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Extension:         DefaultExtension,
		MinFileSizeMB:     20,
		ChunkSize:         4096,
		MaxHexSamples:     5,
		HexSampleBytes:    64,
		ProgressEvery:     100,
		MaxDecodedSamples: 10,
		DebounceDelay:     2 * time.Second,
	}
}

// MinFileSizeBytes converts the megabyte gate to bytes.
func (c *Config) MinFileSizeBytes() int64 {
	return int64(c.MinFileSizeMB) << 20
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Extension[0] != '.' {
		c.Extension = "." + c.Extension
	}

	if c.MinFileSizeMB < 0 {
		return fmt.Errorf("min-size-mb must not be negative")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk-size must be positive")
	}
	if c.MaxDecodedSamples < 0 {
		return fmt.Errorf("max-samples must not be negative")
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("debounce must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
