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
	"net/http"
	"path/filepath"
	"time"

	"github.com/AleutianAI/graphcensus/cmd/graphcensus/config"
	"github.com/AleutianAI/graphcensus/internal/manifest"
	"github.com/AleutianAI/graphcensus/internal/telemetry"
	"github.com/AleutianAI/graphcensus/pkg/catalog"
	"github.com/AleutianAI/graphcensus/pkg/census"
	"github.com/AleutianAI/graphcensus/pkg/fetch"
	"github.com/AleutianAI/graphcensus/pkg/logging"
	"github.com/AleutianAI/graphcensus/pkg/prepare"
	"github.com/AleutianAI/graphcensus/pkg/tables"
	"github.com/AleutianAI/graphcensus/pkg/tracks"
)

// =============================================================================
// Session Wiring
// =============================================================================

// session carries the configured collaborators for one command
// invocation. close must be called when the command finishes.
type session struct {
	cfg    *config.Config
	logger *logging.Logger

	manifest  *manifest.Store
	traceStop func(context.Context) error
}

// newSession loads the config and sets up logging and tracing. It
// builds nothing that touches the network; commands construct their
// own clients from the session so flag errors stay cheap.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "graphcensus",
		JSON:    cfg.Logging.JSON || jsonLogs,
		Quiet:   cfg.Logging.Quiet || quiet,
	})

	s := &session{cfg: cfg, logger: logger}

	if traceOn || cfg.Telemetry.Enabled {
		tcfg := telemetry.DefaultConfig()
		if cfg.Telemetry.Exporter != "" {
			tcfg.Exporter = cfg.Telemetry.Exporter
		}
		if traceOn && tcfg.Exporter == "none" {
			// --trace with no configured exporter still gets spans.
			tcfg.Exporter = "stdout"
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			tcfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
		}
		stop, err := telemetry.Init(ctx, tcfg)
		if err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		s.traceStop = stop
	}

	return s, nil
}

// close flushes traces and releases the manifest and log handles.
func (s *session) close() {
	if s.manifest != nil {
		if err := s.manifest.Close(); err != nil {
			s.logger.Warn("failed to close the cache manifest", "error", err)
		}
		s.manifest = nil
	}
	if s.traceStop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.traceStop(ctx); err != nil {
			s.logger.Warn("failed to flush traces", "error", err)
		}
	}
	_ = s.logger.Close()
}

// catalogClient builds the remote catalog client.
func (s *session) catalogClient() *catalog.Client {
	ccfg := catalog.Config{
		BaseURL:           s.cfg.Catalog.BaseURL,
		RequestsPerSecond: s.cfg.Catalog.RateLimit,
		Logger:            s.logger,
	}
	if t := s.cfg.Catalog.TimeoutSeconds; t > 0 {
		ccfg.HTTPClient = &http.Client{Timeout: time.Duration(t) * time.Second}
	}
	return catalog.New(ccfg)
}

// fetcher builds the dataset downloader, opening the cache manifest
// alongside it. A manifest that cannot be opened degrades to a
// warning; it is advisory bookkeeping, not a correctness gate.
func (s *session) fetcher() (*fetch.Fetcher, error) {
	if s.manifest == nil {
		store, err := manifest.Open(manifest.Config{
			Path:       filepath.Join(s.cfg.Cache.Root, manifest.DirName),
			SyncWrites: true,
			Logger:     s.logger,
		})
		if err != nil {
			s.logger.Warn("cache manifest unavailable", "error", err)
		} else {
			s.manifest = store
		}
	}

	var maxBytes int64
	if s.cfg.Cache.MaxSizeMB > 0 {
		maxBytes = s.cfg.Cache.MaxSizeMB << 20
	}
	return fetch.New(fetch.Config{
		CacheRoot:    s.cfg.Cache.Root,
		MaxSizeBytes: maxBytes,
		Manifest:     s.manifest,
		Logger:       s.logger,
	})
}

// engine builds the census engine subprocess wrapper.
func (s *session) engine() *census.ExecEngine {
	return &census.ExecEngine{
		Command: s.cfg.Census.Command,
		Args:    s.cfg.Census.Args,
		Timeout: time.Duration(s.cfg.Census.TimeoutSeconds) * time.Second,
	}
}

// driver assembles the full preparation pipeline.
func (s *session) driver() (*prepare.Driver, error) {
	fetcher, err := s.fetcher()
	if err != nil {
		return nil, err
	}
	writer, err := tables.NewWriter(s.cfg.Output.Root, s.logger)
	if err != nil {
		return nil, err
	}
	return prepare.New(prepare.Config{
		Resolver: s.catalogClient(),
		Fetcher:  fetcher,
		Engine:   s.engine(),
		Writer:   writer,
		Logger:   s.logger,
	})
}

// =============================================================================
// Flag Validation
// =============================================================================

// selectTracks maps the --track flag to a concrete track list.
// fetchOnly restricts the result to tracks with downloadable datasets
// and rejects a --track naming one without any. Runs before any I/O.
func selectTracks(name string, fetchOnly bool) ([]*tracks.Track, error) {
	if name != "" {
		t, err := tracks.ForName(name)
		if err != nil {
			return nil, err
		}
		if fetchOnly && !t.Fetchable() {
			return nil, fmt.Errorf("track %q has no datasets to fetch", t.Name)
		}
		return []*tracks.Track{t}, nil
	}
	if fetchOnly {
		return tracks.Fetchable(), nil
	}
	all := make([]*tracks.Track, 0, len(tracks.Names()))
	for _, n := range tracks.Names() {
		t, err := tracks.ForName(n)
		if err != nil {
			return nil, err
		}
		all = append(all, t)
	}
	return all, nil
}

// validateLimit rejects nonsense before any component is built.
func validateLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", limit)
	}
	return nil
}

// humanBytes renders a byte count for people.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
