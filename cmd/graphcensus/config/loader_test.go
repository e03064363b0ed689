// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for config loading and default generation

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestDefaultConfigValidates verifies the built-in defaults pass
// their own validation rules.
func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() does not validate: %v", err)
	}
}

// TestWriteDefault verifies the generated file round-trips to the
// built-in defaults.
func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".graphcensus", FileName)

	created, err := WriteDefault(path)
	if err != nil {
		t.Fatalf("WriteDefault() failed: %v", err)
	}
	if !created {
		t.Fatal("WriteDefault() reported created=false for a fresh path")
	}

	loaded, err := load(path, true)
	if err != nil {
		t.Fatalf("load() of the generated file failed: %v", err)
	}
	want := DefaultConfig()
	if !reflect.DeepEqual(*loaded, want) {
		t.Errorf("generated config = %+v, want %+v", *loaded, want)
	}

	// A second call must leave the existing file alone.
	created, err = WriteDefault(path)
	if err != nil {
		t.Fatalf("WriteDefault() on existing file failed: %v", err)
	}
	if created {
		t.Error("WriteDefault() overwrote an existing file")
	}
}

// TestWriteDefault_DirectoryCreation verifies nested directories are
// created.
func TestWriteDefault_DirectoryCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "path", FileName)

	if _, err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() failed with nested path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	if err == nil {
		t.Fatal("load() of a missing explicit path should fail")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %v, want not-found message", err)
	}
}

func TestLoad_MissingDefaultPathUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	if err != nil {
		t.Fatalf("load() without a config file should use defaults, got: %v", err)
	}
	want := DefaultConfig()
	if cfg.Catalog.BaseURL != want.Catalog.BaseURL {
		t.Errorf("BaseURL = %q, want default %q", cfg.Catalog.BaseURL, want.Catalog.BaseURL)
	}
}

// TestLoad_PartialOverlay verifies a sparse file only overrides the
// fields it names.
func TestLoad_PartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "catalog:\n  rate_limit: 5\ncensus:\n  command: /opt/engine/pathcensus\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(path, true)
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}
	if cfg.Catalog.RateLimit != 5 {
		t.Errorf("RateLimit = %v, want 5", cfg.Catalog.RateLimit)
	}
	if cfg.Census.Command != "/opt/engine/pathcensus" {
		t.Errorf("Command = %q, want override", cfg.Census.Command)
	}
	want := DefaultConfig()
	if cfg.Catalog.BaseURL != want.Catalog.BaseURL {
		t.Errorf("BaseURL = %q, want untouched default", cfg.Catalog.BaseURL)
	}
	if cfg.Output.Root != want.Output.Root {
		t.Errorf("Output.Root = %q, want untouched default", cfg.Output.Root)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad level":    "logging:\n  level: verbose\n",
		"bad exporter": "telemetry:\n  exporter: jaeger\n",
		"bad url":      "catalog:\n  base_url: not a url\n",
		"negative":     "catalog:\n  rate_limit: -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := load(path, true)
			if err == nil {
				t.Fatal("load() accepted an invalid config")
			}
			if !strings.Contains(err.Error(), "invalid configuration") {
				t.Errorf("error = %v, want validation failure", err)
			}
		})
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("catalog: [not, a, mapping\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := load(path, true)
	if err == nil {
		t.Fatal("load() accepted malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvVar, "")

	if path, explicit := ResolvePath("/etc/gc.yaml"); path != "/etc/gc.yaml" || !explicit {
		t.Errorf("flag path: got (%q, %v)", path, explicit)
	}

	t.Setenv(EnvVar, "/env/gc.yaml")
	if path, explicit := ResolvePath(""); path != "/env/gc.yaml" || !explicit {
		t.Errorf("env path: got (%q, %v)", path, explicit)
	}
	// The flag still wins over the environment.
	if path, _ := ResolvePath("/etc/gc.yaml"); path != "/etc/gc.yaml" {
		t.Errorf("flag should beat env, got %q", path)
	}

	t.Setenv(EnvVar, "")
	path, explicit := ResolvePath("")
	if explicit {
		t.Error("default path reported explicit=true")
	}
	if path != DefaultPath() {
		t.Errorf("path = %q, want DefaultPath %q", path, DefaultPath())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory on this system")
	}

	if got := expandHome("~/tables"); got != filepath.Join(home, "tables") {
		t.Errorf("expandHome(~/tables) = %q", got)
	}
	if got := expandHome("~"); got != home {
		t.Errorf("expandHome(~) = %q", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome should pass absolute paths through, got %q", got)
	}
	if got := expandHome("~user/x"); got != "~user/x" {
		t.Errorf("expandHome should not touch ~user form, got %q", got)
	}
}
