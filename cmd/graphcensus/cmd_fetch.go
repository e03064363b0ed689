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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/graphcensus/pkg/fetch"
	"github.com/AleutianAI/graphcensus/pkg/prepare"
	"github.com/AleutianAI/graphcensus/pkg/tracks"
	"github.com/AleutianAI/graphcensus/pkg/ux"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runFetch(cmd *cobra.Command, args []string) error {
	if err := validateLimit(limitCount); err != nil {
		return err
	}
	selected, err := selectTracks(trackName, true)
	if err != nil {
		return err
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	failed, err := fetchTracks(cmd.Context(), s, selected)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d downloads failed", failed)
	}
	return nil
}

// fetchTracks downloads every entry of the given tracks, isolating
// per-dataset failures. It returns the failure count; err is reserved
// for whole-run problems such as a cancelled context.
func fetchTracks(ctx context.Context, s *session, selected []*tracks.Track) (int, error) {
	resolver := s.catalogClient()
	fetcher, err := s.fetcher()
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, track := range selected {
		ux.Title(fmt.Sprintf("Fetching %s", track.Name))

		entries, err := prepare.ListEntries(ctx, resolver, track)
		if err != nil {
			failed++
			ux.Error(err.Error())
			continue
		}
		if limitCount > 0 && limitCount < len(entries) {
			entries = entries[:limitCount]
		}

		ok := 0
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return failed, fmt.Errorf("fetch aborted: %w", err)
			}
			if err := fetchEntry(ctx, resolver, fetcher, entry); err != nil {
				failed++
				ux.Error(fmt.Sprintf("%s: %v", entry.Name(), err))
				s.logger.Error("download failed", "dataset", entry.Name(), "error", err)
				continue
			}
			ok++
		}
		ux.Summary(ok, len(entries)-ok, len(entries))
	}
	return failed, nil
}

// fetchEntry resolves and downloads one dataset.
func fetchEntry(ctx context.Context, r prepare.Resolver, f *fetch.Fetcher, entry tracks.Entry) error {
	desc, err := r.Resolve(ctx, entry.Name())
	if err != nil {
		return err
	}
	res, err := f.Fetch(ctx, desc, fetch.Options{Force: forceFetch})
	if err != nil {
		return err
	}
	if res.FromCache {
		ux.Muted(fmt.Sprintf("%s already cached", entry.Name()))
	} else {
		ux.Success(fmt.Sprintf("%s (%s)", entry.Name(), humanBytes(res.Bytes)))
	}
	return nil
}
