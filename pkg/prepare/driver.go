// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package prepare runs graph tracks end to end: it resolves the
// track's dataset entries, materializes them in the local cache,
// runs the census engine over each graph, and writes the result
// tables. One dataset failing never aborts the batch; failures are
// collected in the run report and the caller decides the exit code.
package prepare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/graphcensus/internal/telemetry"
	"github.com/AleutianAI/graphcensus/pkg/catalog"
	"github.com/AleutianAI/graphcensus/pkg/census"
	"github.com/AleutianAI/graphcensus/pkg/fetch"
	"github.com/AleutianAI/graphcensus/pkg/graph"
	"github.com/AleutianAI/graphcensus/pkg/logging"
	"github.com/AleutianAI/graphcensus/pkg/tables"
	"github.com/AleutianAI/graphcensus/pkg/tracks"
)

// tracerName identifies this package's spans.
const tracerName = "graphcensus.prepare"

// ======================================================================
// Collaborator interfaces
// ======================================================================

// Resolver looks up datasets and collection listings in the catalog.
type Resolver interface {
	Resolve(ctx context.Context, name string) (*catalog.Descriptor, error)
	Collection(ctx context.Context, collection string) (*catalog.CollectionInfo, error)
}

// Fetcher materializes a dataset in the local cache and returns the
// path of the decompressed edge list.
type Fetcher interface {
	Fetch(ctx context.Context, desc *catalog.Descriptor, opts fetch.Options) (*fetch.Result, error)
}

// TableWriter persists prepared tables under the output root.
type TableWriter interface {
	WriteCSV(track, table string, rows interface{}) (string, error)
	WriteFile(track, table, ext string, content []byte) (string, error)
}

var (
	_ Resolver    = (*catalog.Client)(nil)
	_ Fetcher     = (*fetch.Fetcher)(nil)
	_ TableWriter = (*tables.Writer)(nil)
)

// ======================================================================
// Driver
// ======================================================================

// Config carries the collaborators a Driver needs. Engine and Writer
// are always required; Resolver and Fetcher only for tracks that read
// the catalog, so the performance track can run fully offline.
type Config struct {
	Resolver Resolver
	Fetcher  Fetcher
	Engine   census.Engine
	Writer   TableWriter
	Logger   *logging.Logger
}

// Options tunes a single run.
type Options struct {
	// Limit caps the number of entries processed. Zero means all.
	Limit int

	// Force re-downloads datasets even when already cached.
	Force bool
}

// Driver executes tracks.
type Driver struct {
	resolver Resolver
	fetcher  Fetcher
	engine   census.Engine
	writer   TableWriter
	logger   *logging.Logger
}

// New creates a Driver from cfg.
func New(cfg Config) (*Driver, error) {
	if cfg.Engine == nil {
		return nil, errors.New("census engine is required")
	}
	if cfg.Writer == nil {
		return nil, errors.New("table writer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New(logging.Config{Quiet: true})
	}
	return &Driver{
		resolver: cfg.Resolver,
		fetcher:  cfg.Fetcher,
		engine:   cfg.Engine,
		writer:   cfg.Writer,
		logger:   logger,
	}, nil
}

// Run executes one track and returns its report. The report is
// populated even when err is non-nil, so callers can render partial
// progress before bailing out. Per-dataset errors are recorded in
// the report, not returned; err covers failures that invalidate the
// whole run, such as an unreachable catalog or an unwritable table.
func (d *Driver) Run(ctx context.Context, track *tracks.Track, opts Options) (*Report, error) {
	report := newReport(track.Name)
	defer report.finish()

	ctx, span := telemetry.StartSpan(ctx, tracerName, "prepare.Run",
		trace.WithAttributes(
			attribute.String("track", track.Name),
			attribute.String("run_id", report.RunID),
		))
	defer span.End()

	d.logger.Info("track started", "track", track.Name, "run_id", report.RunID)

	var err error
	switch track.Kind {
	case tracks.KindStatic, tracks.KindDynamic:
		err = d.runCensusTrack(ctx, track, opts, report)
	case tracks.KindAggregate:
		err = d.runDescriptive(ctx, track, opts, report)
	case tracks.KindSynthetic:
		err = d.runPerformance(ctx, track, opts, report)
	default:
		err = fmt.Errorf("track %q has unsupported kind %s", track.Name, track.Kind)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return report, fmt.Errorf("track %q: %w", track.Name, err)
	}
	telemetry.SetSpanOK(span)

	d.logger.Info("track finished",
		"track", track.Name,
		"run_id", report.RunID,
		"succeeded", len(report.Successes),
		"failed", len(report.Failures),
	)
	return report, nil
}

// ListEntries returns the concrete dataset entries of a track. Static
// tracks carry a curated list; dynamic tracks enumerate their source
// collection through the catalog at run time. The fetch command uses
// this directly to know what to download.
func ListEntries(ctx context.Context, r Resolver, track *tracks.Track) ([]tracks.Entry, error) {
	switch track.Kind {
	case tracks.KindStatic:
		return track.Entries(), nil
	case tracks.KindDynamic:
		if r == nil {
			return nil, fmt.Errorf("track %q requires a catalog resolver", track.Name)
		}
		info, err := r.Collection(ctx, track.Collection)
		if err != nil {
			return nil, fmt.Errorf("failed to list collection %q: %w", track.Collection, err)
		}
		names := make([]string, 0, len(info.Nets))
		for i := range info.Nets {
			names = append(names, info.Nets[i].Name)
		}
		return track.DynamicEntries(names), nil
	default:
		return nil, fmt.Errorf("track %q has no dataset entries", track.Name)
	}
}

func (d *Driver) entriesFor(ctx context.Context, track *tracks.Track) ([]tracks.Entry, error) {
	return ListEntries(ctx, d.resolver, track)
}

func applyLimit(entries []tracks.Entry, limit int) []tracks.Entry {
	if limit > 0 && limit < len(entries) {
		return entries[:limit]
	}
	return entries
}

// ======================================================================
// Census tracks
// ======================================================================

// runCensusTrack processes every entry of a static or dynamic track
// and writes one CSV per track. Entries fail independently; a
// cancelled context aborts the batch.
func (d *Driver) runCensusTrack(ctx context.Context, track *tracks.Track, opts Options, report *Report) error {
	entries, err := d.entriesFor(ctx, track)
	if err != nil {
		return err
	}
	entries = applyLimit(entries, opts.Limit)
	report.Total = len(entries)

	rows := make([]*CensusRow, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run aborted: %w", err)
		}

		row, err := d.censusEntry(ctx, entry, opts)
		if err != nil {
			report.addFailure(entry.RowKey(), err)
			d.logger.Error("dataset failed",
				"track", track.Name, "dataset", entry.RowKey(), "error", err)
			continue
		}
		rows = append(rows, row)
		report.addSuccess(entry.RowKey())
	}

	if len(rows) == 0 {
		d.logger.Warn("no rows produced, skipping table", "track", track.Name)
		return nil
	}

	path, err := d.writer.WriteCSV(track.Name, track.Table, rows)
	if err != nil {
		return fmt.Errorf("failed to write table %q: %w", track.Table, err)
	}
	report.Tables = append(report.Tables, path)
	return nil
}

// censusEntry runs the full pipeline for one dataset: resolve,
// fetch, load, preprocess, census.
func (d *Driver) censusEntry(ctx context.Context, entry tracks.Entry, opts Options) (_ *CensusRow, err error) {
	if d.resolver == nil || d.fetcher == nil {
		return nil, errors.New("census tracks require a catalog resolver and a fetcher")
	}

	ctx, span := telemetry.StartSpan(ctx, tracerName, "prepare.censusEntry",
		trace.WithAttributes(attribute.String("dataset", entry.RowKey())))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	start := time.Now()

	desc, err := d.resolver.Resolve(ctx, entry.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve: %w", err)
	}
	res, err := d.fetcher.Fetch(ctx, desc, fetch.Options{Force: opts.Force})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	raw, err := graph.LoadFile(res.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load edge list: %w", err)
	}

	processed, err := preprocessEntry(raw, entry)
	if err != nil {
		return nil, err
	}

	result, err := d.engine.Census(ctx, processed)
	if err != nil {
		return nil, fmt.Errorf("census failed: %w", err)
	}
	if err := result.Require(census.CoefficientKeys...); err != nil {
		return nil, err
	}

	d.logger.Debug("dataset processed",
		"dataset", entry.RowKey(),
		"n_nodes", processed.NumVertices(),
		"n_edges", processed.NumEdges(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return buildCensusRow(entry, raw, processed, result), nil
}

// preprocessEntry reduces the raw edge list to the graph the census
// runs on. Entries pinned to a component keep that component in full;
// everything else is simplified and cut to the giant component.
func preprocessEntry(raw *graph.Graph, entry tracks.Entry) (*graph.Graph, error) {
	if entry.Component > 0 {
		g, err := raw.Simplify().NthComponent(entry.Component)
		if err != nil {
			return nil, fmt.Errorf("failed to extract component %d: %w", entry.Component, err)
		}
		return g, nil
	}
	return raw.Preprocess(), nil
}

func buildCensusRow(entry tracks.Entry, raw, processed *graph.Graph, result census.Result) *CensusRow {
	stats := processed.DegreeStats()

	fracTotal := 0.0
	if raw.NumVertices() > 0 {
		fracTotal = float64(processed.NumVertices()) / float64(raw.NumVertices())
	}

	return &CensusRow{
		Dataset:  entry.Name(),
		Network:  entry.Network(),
		Label:    entry.Label,
		Domain:   entry.Domain,
		Relation: entry.Relation,
		Desc:     entry.Desc,

		NNodes:    processed.NumVertices(),
		NEdges:    processed.NumEdges(),
		FracTotal: fracTotal,
		Density:   processed.Density(),
		Dbar:      stats.Mean,
		Dcv:       stats.CV,
		Dmin:      stats.Min,
		Dmax:      stats.Max,

		SimGlobal:  result[census.StatSimGlobal],
		Sim:        result[census.StatSim],
		SimEdges:   result[census.StatSimEdges],
		CompGlobal: result[census.StatCompGlobal],
		Comp:       result[census.StatComp],
		CompEdges:  result[census.StatCompEdges],
	}
}
