package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("addr %q", cfg.Addr)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("backend %q", cfg.Storage.Backend)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Errorf("frame rate %d", cfg.FrameRate)
	}
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	path := writeConfig(t, `{"addr": ":9090"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr %q", cfg.Addr)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Errorf("frame rate %d", cfg.FrameRate)
	}
}

func TestLoadDiskBackend(t *testing.T) {
	path := writeConfig(t, `{"storage": {"backend": "disk", "dir": "/var/lib/hooks"}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != BackendDisk || cfg.Storage.Dir != "/var/lib/hooks" {
		t.Errorf("storage %+v", cfg.Storage)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"addr": }`},
		{"unknown backend", `{"storage": {"backend": "redis"}}`},
		{"disk without dir", `{"storage": {"backend": "disk"}}`},
		{"s3 without bucket", `{"storage": {"backend": "s3"}}`},
		{"zero frame rate", `{"frame_rate": -1}`},
		{"absurd frame rate", `{"frame_rate": 1000}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
