// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/graphcensus/internal/manifest"
	"github.com/AleutianAI/graphcensus/pkg/ux"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runClean(cmd *cobra.Command, args []string) error {
	if cleanCache && cleanAll {
		return errors.New("--all already includes the cache; drop --cache")
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	clearOutput := !cleanCache || cleanAll
	clearCache := cleanCache || cleanAll

	if clearOutput {
		if err := removeTree(s, "derived tables", s.cfg.Output.Root); err != nil {
			return err
		}
	}
	if clearCache {
		reportCacheContents(s)
		// The manifest lives inside the cache root and falls with it.
		if err := removeTree(s, "dataset cache", s.cfg.Cache.Root); err != nil {
			return err
		}
	}
	return nil
}

// reportCacheContents prints what is about to be removed, using the
// manifest when available. Purely informational; any failure here
// just skips the message.
func reportCacheContents(s *session) {
	path := filepath.Join(s.cfg.Cache.Root, manifest.DirName)
	if _, err := os.Stat(path); err != nil {
		return
	}
	store, err := manifest.Open(manifest.Config{Path: path, Logger: s.logger})
	if err != nil {
		return
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil || len(entries) == 0 {
		return
	}
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	ux.Info(fmt.Sprintf("Cache holds %d datasets (%s)", len(entries), humanBytes(total)))
}

// removeTree deletes root after a couple of sanity checks. The guard
// exists because both paths are user-configurable.
func removeTree(s *session, what, root string) error {
	if root == "" {
		return fmt.Errorf("refusing to remove the %s: empty path configured", what)
	}
	cleaned := filepath.Clean(root)
	home, _ := os.UserHomeDir()
	if cleaned == "/" || cleaned == "." || cleaned == home {
		return fmt.Errorf("refusing to remove the %s at %s", what, cleaned)
	}

	if _, err := os.Stat(cleaned); errors.Is(err, os.ErrNotExist) {
		ux.Muted(fmt.Sprintf("No %s at %s", what, cleaned))
		return nil
	}
	if err := os.RemoveAll(cleaned); err != nil {
		return fmt.Errorf("failed to remove the %s at %s: %w", what, cleaned, err)
	}
	ux.Success(fmt.Sprintf("Removed the %s at %s", what, cleaned))
	s.logger.Info("directory removed", "path", cleaned)
	return nil
}
