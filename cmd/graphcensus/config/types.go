// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads and validates the graphcensus YAML
// configuration. Values never reach components through package
// globals; commands read the config once and pass fields down as
// explicit parameters.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// cfgValidate is the validator instance for config structs.
var cfgValidate *validator.Validate

func init() {
	cfgValidate = validator.New()
}

// Config is the full process configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Cache     CacheConfig     `yaml:"cache"`
	Output    OutputConfig    `yaml:"output"`
	Census    CensusConfig    `yaml:"census"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Publish   PublishConfig   `yaml:"publish"`
}

// CatalogConfig points at the remote catalog service.
type CatalogConfig struct {
	// BaseURL is the catalog root, without a trailing slash.
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// RateLimit caps metadata requests per second. Zero keeps the
	// client default.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`

	// TimeoutSeconds bounds a single catalog request.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gte=0"`
}

// CacheConfig locates the local dataset cache.
type CacheConfig struct {
	// Root is the cache directory. Datasets land under
	// <root>/<collection>/, the manifest under <root>/.manifest.
	Root string `yaml:"root" validate:"required"`

	// MaxSizeMB caps a single downloaded payload. Zero keeps the
	// fetcher default.
	MaxSizeMB int64 `yaml:"max_size_mb" validate:"gte=0"`
}

// OutputConfig locates the derived tables.
type OutputConfig struct {
	// Root is the output directory. Tables land under <root>/<track>/.
	Root string `yaml:"root" validate:"required"`
}

// CensusConfig describes the external statistics engine.
type CensusConfig struct {
	// Command is the engine executable, absolute or on $PATH.
	Command string `yaml:"command"`

	// Args are fixed arguments prepended to every invocation.
	Args []string `yaml:"args"`

	// MinVersion is the lowest acceptable engine version, checked by
	// `graphcensus init`. Empty disables the check.
	MinVersion string `yaml:"min_version"`

	// TimeoutSeconds bounds a single census call. Zero means no
	// limit beyond the run context.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gte=0"`
}

// LoggingConfig mirrors pkg/logging.Config.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	Dir   string `yaml:"dir"`
	JSON  bool   `yaml:"json"`
	Quiet bool   `yaml:"quiet"`
}

// TelemetryConfig controls trace export.
type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Exporter     string `yaml:"exporter" validate:"oneof=otlp stdout none"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// PublishConfig points `graphcensus publish` at a GCS bucket.
type PublishConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`

	// CredentialsFile is a service account key path. Empty uses
	// application default credentials.
	CredentialsFile string `yaml:"credentials_file"`
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return cfgValidate.Struct(c)
}

// DefaultConfig returns the configuration a fresh install starts
// from. Paths live under ~/.graphcensus; when the home directory
// cannot be determined they degrade to relative paths under the
// working directory.
func DefaultConfig() Config {
	base := ".graphcensus"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".graphcensus")
	}
	return Config{
		Catalog: CatalogConfig{
			BaseURL:        "https://networks.skewed.de",
			RateLimit:      2,
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Root: filepath.Join(base, "cache"),
		},
		Output: OutputConfig{
			Root: filepath.Join(base, "output"),
		},
		Census: CensusConfig{
			Command:        "pathcensus",
			TimeoutSeconds: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Exporter:     "none",
			OTLPEndpoint: "localhost:4317",
		},
		Publish: PublishConfig{
			Prefix: "tables",
		},
	}
}

// expandHome rewrites a leading "~" to the user's home directory.
// Paths without the prefix pass through untouched.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}

// normalize expands ~ in every path-valued field.
func (c *Config) normalize() {
	c.Cache.Root = expandHome(c.Cache.Root)
	c.Output.Root = expandHome(c.Output.Root)
	c.Logging.Dir = expandHome(c.Logging.Dir)
	c.Publish.CredentialsFile = expandHome(c.Publish.CredentialsFile)
}
