// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/AleutianAI/graphcensus/cmd/graphcensus/config"
	"github.com/AleutianAI/graphcensus/pkg/ux"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runInit prepares the environment: config file, cache and output
// directories, and a working census engine.
func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, _ := config.ResolvePath(cfgPath)
	created, err := config.WriteDefault(path)
	if err != nil {
		return err
	}
	if created {
		ux.Success(fmt.Sprintf("Created default config at %s", path))
	} else {
		ux.Muted(fmt.Sprintf("Config already present at %s", path))
	}

	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	for _, dir := range []string{s.cfg.Cache.Root, s.cfg.Output.Root} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	ux.Info(fmt.Sprintf("Cache directory  %s", s.cfg.Cache.Root))
	ux.Info(fmt.Sprintf("Output directory %s", s.cfg.Output.Root))

	return probeEngine(ctx, s)
}

// probeEngine checks that the census engine answers --version and
// meets the configured minimum.
func probeEngine(ctx context.Context, s *session) error {
	if s.cfg.Census.Command == "" {
		ux.Warning("No census engine configured; set census.command before running prepare")
		return nil
	}

	version, err := s.engine().Version(ctx)
	if err != nil {
		return fmt.Errorf("census engine %q is not usable: %w", s.cfg.Census.Command, err)
	}
	ux.Success(fmt.Sprintf("Census engine %s reports version %s", s.cfg.Census.Command, version))

	if min := s.cfg.Census.MinVersion; min != "" {
		if err := checkMinVersion(version, min); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// VERSION GATE
// =============================================================================

// versionPattern pulls the first dotted version number out of a
// --version line such as "pathcensus 1.4.2 (cpython 3.12)".
var versionPattern = regexp.MustCompile(`v?\d+(\.\d+){0,2}`)

// normalizeVersion extracts a canonical semver string ("v1.4.2") from
// raw engine output. Returns "" when no version number is present.
func normalizeVersion(raw string) string {
	m := versionPattern.FindString(raw)
	if m == "" {
		return ""
	}
	if !strings.HasPrefix(m, "v") {
		m = "v" + m
	}
	if !semver.IsValid(m) {
		return ""
	}
	return m
}

// checkMinVersion compares an engine-reported version against the
// configured minimum.
func checkMinVersion(reported, minimum string) error {
	got := normalizeVersion(reported)
	if got == "" {
		return fmt.Errorf("cannot parse a version from engine output %q", reported)
	}
	want := normalizeVersion(minimum)
	if want == "" {
		return fmt.Errorf("cannot parse census.min_version %q", minimum)
	}
	if semver.Compare(got, want) < 0 {
		return fmt.Errorf("census engine version %s is below the required minimum %s", got, want)
	}
	return nil
}
