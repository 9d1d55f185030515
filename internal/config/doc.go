// Package config loads hooks.json, the runtime configuration for the
// demo server. Missing files and missing fields fall back to defaults so
// a bare `hooksd serve` works out of the box.
package config
