// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name under the config directory.
const FileName = "graphcensus.yaml"

// EnvVar names the environment override for the config file path.
const EnvVar = "GRAPHCENSUS_CONFIG"

var (
	global    *Config
	globalErr error
	once      sync.Once
)

// DefaultPath returns ~/.graphcensus/graphcensus.yaml, degrading to
// a working-directory-relative path when the home directory cannot
// be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".graphcensus", FileName)
	}
	return filepath.Join(home, ".graphcensus", FileName)
}

// ResolvePath picks the config file location: the --config flag wins,
// then GRAPHCENSUS_CONFIG, then DefaultPath. explicit reports whether
// the user named the path; a missing file at an explicit path is an
// error, while a missing default file falls back to built-in defaults.
func ResolvePath(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return expandHome(flagPath), true
	}
	if env := os.Getenv(EnvVar); env != "" {
		return expandHome(env), true
	}
	return DefaultPath(), false
}

// Load reads the configuration once per process. flagPath comes from
// the --config flag; empty falls back to the environment and then to
// the default location.
func Load(flagPath string) (*Config, error) {
	once.Do(func() {
		path, explicit := ResolvePath(flagPath)
		global, globalErr = load(path, explicit)
	})
	return global, globalErr
}

func load(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// First run before `graphcensus init`; the built-in defaults
		// work for everything except publishing.
		cfg.normalize()
		return &cfg, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("config file not found at %s", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read the config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return &cfg, nil
}

// WriteDefault writes a commented default configuration to path,
// creating parent directories as needed. An existing file is left
// alone; created reports whether a file was written.
func WriteDefault(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat the config file %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return false, fmt.Errorf("failed to create the config directory: %w", err)
	}
	defaults := DefaultConfig()
	content := fmt.Sprintf(defaultTemplate,
		defaults.Catalog.BaseURL, defaults.Cache.Root, defaults.Output.Root)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write the default config: %w", err)
	}
	return true, nil
}

// defaultTemplate is the commented config written on first run. The
// placeholders are filled from DefaultConfig so the file and the
// built-in defaults cannot drift apart.
const defaultTemplate = `# graphcensus configuration.
# Generated by 'graphcensus init'; edit freely.

catalog:
  # Remote catalog root. All metadata and dataset downloads come
  # from this host.
  base_url: %s
  # Metadata requests per second. Keep this polite; the catalog is
  # a shared academic service.
  rate_limit: 2
  timeout_seconds: 30

cache:
  # Downloaded edge lists land here, one directory per collection.
  root: %s
  # Per-payload size cap in megabytes. 0 keeps the built-in limit.
  max_size_mb: 0

output:
  # Derived tables land here, one directory per track.
  root: %s

census:
  # External statistics engine. Must speak the stdin/stdout JSON
  # contract; 'graphcensus init' probes it with --version.
  command: pathcensus
  # args: []
  # Lowest acceptable engine version. Empty disables the check.
  min_version: ""
  # Per-call timeout in seconds. 0 means no limit.
  timeout_seconds: 0

logging:
  # debug, info, warn, or error.
  level: info
  # When set, logs are mirrored to daily JSON files here.
  dir: ""
  json: false
  quiet: false

telemetry:
  enabled: false
  # otlp, stdout, or none.
  exporter: none
  otlp_endpoint: localhost:4317

publish:
  # GCS bucket for 'graphcensus publish'. Empty disables publishing.
  bucket: ""
  prefix: tables
  # Service account key. Empty uses application default credentials.
  credentials_file: ""
`
