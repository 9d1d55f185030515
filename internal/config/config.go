package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	// FileName is the default configuration file name.
	FileName = "hooks.json"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultFrameRate is the default animation frame rate in frames
	// per second.
	DefaultFrameRate = 60
)

// Storage backends selectable in hooks.json.
const (
	BackendMemory = "memory"
	BackendDisk   = "disk"
	BackendS3     = "s3"
)

// Config is the parsed hooks.json.
type Config struct {
	// Addr is the listen address for the demo server.
	Addr string `json:"addr,omitempty"`

	// Storage selects and configures the persistence backend.
	Storage StorageConfig `json:"storage,omitempty"`

	// FrameRate is the animation loop rate in frames per second.
	FrameRate int `json:"frame_rate,omitempty"`
}

// StorageConfig configures the persistence backend behind stored values.
type StorageConfig struct {
	// Backend is "memory", "disk", or "s3".
	Backend string `json:"backend,omitempty"`

	// Dir is the root directory for the disk backend.
	Dir string `json:"dir,omitempty"`

	// Bucket is the bucket name for the s3 backend.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is an optional key prefix for the s3 backend.
	Prefix string `json:"prefix,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Addr:      DefaultAddr,
		FrameRate: DefaultFrameRate,
		Storage:   StorageConfig{Backend: BackendMemory},
	}
}

// Load reads the configuration from path. A missing file yields the
// defaults; a present file is validated after defaults are filled in.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendDisk:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage backend %q requires dir", BackendDisk)
		}
	case BackendS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage backend %q requires bucket", BackendS3)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.FrameRate <= 0 || c.FrameRate > 240 {
		return fmt.Errorf("frame_rate %d out of range (1-240)", c.FrameRate)
	}
	return nil
}
