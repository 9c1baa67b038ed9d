package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				CaptureDir:        "/captures",
				Extension:         ".hdf",
				MinFileSizeMB:     50,
				ChunkSize:         8192,
				MaxDecodedSamples: 25,
				DebounceDelay:     "5s",
				JSONOutput:        &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				CaptureDir:        "/captures",
				Extension:         ".hdf",
				MinFileSizeMB:     50,
				ChunkSize:         8192,
				MaxDecodedSamples: 25,
				DebounceDelay:     5 * time.Second,
				JSONOutput:        true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				CaptureDir: "/from/file",
				Extension:  ".hdf",
			},
			changed: map[string]bool{"dir": true},
			initial: Config{
				CaptureDir: "/from/flag",
				Extension:  ".qmdl",
			},
			expected: Config{
				CaptureDir: "/from/flag", // unchanged because flag was set
				Extension:  ".hdf",
			},
			wantErr: false,
		},
		{
			name: "ignores empty and non-positive values",
			fileConfig: FileConfig{
				CaptureDir: "",
				ChunkSize:  -1,
			},
			changed: map[string]bool{},
			initial: Config{
				CaptureDir: "/keep",
				ChunkSize:  4096,
			},
			expected: Config{
				CaptureDir: "/keep",
				ChunkSize:  4096,
			},
			wantErr: false,
		},
		{
			name: "invalid debounce duration",
			fileConfig: FileConfig{
				DebounceDelay: "not-a-duration",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		`capture_dir = "/data/captures"`,
		`extension = ".qmdl"`,
		`min_file_size_mb = 10`,
		`chunk_size = 2048`,
		`json_output = true`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() unexpected error: %v", err)
	}
	if fc.CaptureDir != "/data/captures" {
		t.Errorf("CaptureDir = %q, want /data/captures", fc.CaptureDir)
	}
	if fc.MinFileSizeMB != 10 {
		t.Errorf("MinFileSizeMB = %d, want 10", fc.MinFileSizeMB)
	}
	if fc.ChunkSize != 2048 {
		t.Errorf("ChunkSize = %d, want 2048", fc.ChunkSize)
	}
	if fc.JSONOutput == nil || !*fc.JSONOutput {
		t.Error("JSONOutput = nil/false, want true")
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("LoadFileConfig() expected error for missing file")
	}
}

func TestLoadFileConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("capture_dir = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig() expected error for malformed TOML")
	}
}
