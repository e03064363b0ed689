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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/graphcensus/internal/artifact"
	"github.com/AleutianAI/graphcensus/pkg/ux"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runPublish(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	bucket := bucketName
	if bucket == "" {
		bucket = s.cfg.Publish.Bucket
	}
	if bucket == "" {
		return errors.New("no bucket configured: set publish.bucket or pass --bucket")
	}

	root := s.cfg.Output.Root
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("nothing to publish: %s does not exist (run prepare first)", root)
	}

	pub, err := artifact.New(cmd.Context(), artifact.Config{
		Bucket:          bucket,
		Prefix:          s.cfg.Publish.Prefix,
		CredentialsFile: s.cfg.Publish.CredentialsFile,
		Logger:          s.logger,
	})
	if err != nil {
		return err
	}
	defer pub.Close()

	urls, err := pub.PublishDir(cmd.Context(), root)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		ux.Warning("No tables found to publish")
		return nil
	}
	for _, u := range urls {
		ux.Success(u)
	}
	ux.Info(fmt.Sprintf("Published %d files to gs://%s", len(urls), bucket))
	return nil
}
