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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/graphcensus/pkg/prepare"
	"github.com/AleutianAI/graphcensus/pkg/tracks"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runPrepare(cmd *cobra.Command, args []string) error {
	if err := validateLimit(limitCount); err != nil {
		return err
	}
	selected, err := selectTracks(trackName, false)
	if err != nil {
		return err
	}

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	return prepareTracks(cmd.Context(), s, selected)
}

// prepareTracks runs the preparation driver over each track in turn,
// rendering one report per track. The returned error is non-nil when
// any dataset failed, so the process exits non-zero.
func prepareTracks(ctx context.Context, s *session, selected []*tracks.Track) error {
	driver, err := s.driver()
	if err != nil {
		return err
	}

	failed := 0
	for _, track := range selected {
		report, err := driver.Run(ctx, track, prepare.Options{Limit: limitCount, Force: forceFetch})
		if report != nil {
			report.Render(os.Stdout)
			failed += len(report.Failures)
		}
		if err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d datasets failed", failed)
	}
	return nil
}
