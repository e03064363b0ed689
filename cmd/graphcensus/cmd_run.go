// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/graphcensus/pkg/tracks"
)

// runRun is the make-style composite: download everything first, then
// prepare, so a long engine run never stalls on the network.
func runRun(cmd *cobra.Command, args []string) error {
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

	fetchable := make([]*tracks.Track, 0, len(selected))
	for _, t := range selected {
		if t.Fetchable() {
			fetchable = append(fetchable, t)
		}
	}
	if len(fetchable) > 0 {
		failed, err := fetchTracks(cmd.Context(), s, fetchable)
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("aborting before prepare: %d downloads failed", failed)
		}
	}

	return prepareTracks(cmd.Context(), s, selected)
}
