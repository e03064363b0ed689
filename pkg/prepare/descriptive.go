// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package prepare

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/graphcensus/internal/telemetry"
	"github.com/AleutianAI/graphcensus/pkg/census"
	"github.com/AleutianAI/graphcensus/pkg/fetch"
	"github.com/AleutianAI/graphcensus/pkg/graph"
	"github.com/AleutianAI/graphcensus/pkg/tables"
	"github.com/AleutianAI/graphcensus/pkg/tracks"
)

// descriptiveCaptions names each source group in table captions.
var descriptiveCaptions = map[string]string{
	"domains": "Social and biological networks",
	"social":  "Ugandan village networks",
}

// descriptiveSymbols are the value column headers, in row cell order.
var descriptiveSymbols = []string{
	`$s$`, `$c$`, `$n$`, `$S$`, `$\rho$`,
	`$\langle{d_i}\rangle$`, `$\sigma_{d_i}$`, `$d_{\text{max}}$`,
}

// descriptiveNotes explain the column symbols below each table.
var descriptiveNotes = []string{
	`$s$ - global similarity (clustering)`,
	`$c$ - global complementarity`,
	`$n$ - number of nodes in the giant component`,
	`$S$ - relative size of the giant component`,
	`$\rho$ - edge density`,
	`$\langle{d_i}\rangle$ - average node degree`,
	`$\sigma_{d_i}$ - coefficient of variation of node degrees`,
	`$d_{\text{max}}$ - maximum node degree`,
}

// descriptiveGroup holds one source group's sorted rows plus its
// Average row, kept separate so the LaTeX render can bold it.
type descriptiveGroup struct {
	name    string
	rows    []*DescriptiveRow
	average *DescriptiveRow
}

// runDescriptive recomputes descriptive statistics over the datasets
// of the source tracks and writes one combined CSV plus a LaTeX file
// with one threeparttable per group. Datasets already in the cache
// are not downloaded again.
func (d *Driver) runDescriptive(ctx context.Context, track *tracks.Track, opts Options, report *Report) error {
	if d.resolver == nil || d.fetcher == nil {
		return errors.New("descriptive track requires a catalog resolver and a fetcher")
	}

	var groups []descriptiveGroup
	for _, source := range track.Sources {
		src, err := tracks.ForName(source)
		if err != nil {
			return err
		}
		entries, err := d.entriesFor(ctx, src)
		if err != nil {
			return err
		}
		entries = applyLimit(entries, opts.Limit)
		report.Total += len(entries)

		rows := make([]*DescriptiveRow, 0, len(entries))
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("run aborted: %w", err)
			}

			row, err := d.descriptiveEntry(ctx, source, entry, opts)
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
			continue
		}

		sortDescriptiveRows(rows)
		groups = append(groups, descriptiveGroup{
			name:    source,
			rows:    rows,
			average: averageDescriptiveRow(source, rows),
		})
	}

	if len(groups) == 0 {
		d.logger.Warn("no rows produced, skipping tables", "track", track.Name)
		return nil
	}

	var all []*DescriptiveRow
	for _, g := range groups {
		all = append(all, g.rows...)
		all = append(all, g.average)
	}
	path, err := d.writer.WriteCSV(track.Name, track.Table, all)
	if err != nil {
		return fmt.Errorf("failed to write table %q: %w", track.Table, err)
	}
	report.Tables = append(report.Tables, path)

	tex, err := renderDescriptiveTables(groups)
	if err != nil {
		return err
	}
	path, err = d.writer.WriteFile(track.Name, track.Table, "tex", []byte(tex))
	if err != nil {
		return fmt.Errorf("failed to write table %q: %w", track.Table, err)
	}
	report.Tables = append(report.Tables, path)
	return nil
}

// descriptiveEntry computes one dataset's row. The vertex count is
// taken before and after preprocessing so relsize reflects how much
// of the raw graph the giant component keeps.
func (d *Driver) descriptiveEntry(ctx context.Context, group string, entry tracks.Entry, opts Options) (_ *DescriptiveRow, err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "prepare.descriptiveEntry",
		trace.WithAttributes(
			attribute.String("dataset", entry.RowKey()),
			attribute.String("group", group),
		))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

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

	nTotal := raw.NumVertices()
	processed, err := preprocessEntry(raw, entry)
	if err != nil {
		return nil, err
	}

	result, err := d.engine.Census(ctx, processed)
	if err != nil {
		return nil, fmt.Errorf("census failed: %w", err)
	}
	if err := result.Require(census.StatSimGlobal, census.StatCompGlobal); err != nil {
		return nil, err
	}

	stats := processed.DegreeStats()
	relSize := 0.0
	if nTotal > 0 {
		relSize = float64(processed.NumVertices()) / float64(nTotal)
	}

	return &DescriptiveRow{
		Domain:  entry.Domain,
		Group:   group,
		Dataset: entry.Collection,
		Network: entry.Network(),

		Sim:     result[census.StatSimGlobal],
		Comp:    result[census.StatCompGlobal],
		NNodes:  float64(processed.NumVertices()),
		RelSize: relSize,
		Density: processed.Density(),
		Dbar:    stats.Mean,
		Dcv:     stats.CV,
		Dmax:    float64(stats.Max),
	}, nil
}

// sortDescriptiveRows orders rows naturally by their index columns,
// so "friendship-2" sorts before "friendship-10".
func sortDescriptiveRows(rows []*DescriptiveRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := tables.NaturalCompare(a.Domain, b.Domain); c != 0 {
			return c < 0
		}
		if c := tables.NaturalCompare(a.Group, b.Group); c != 0 {
			return c < 0
		}
		if c := tables.NaturalCompare(a.Dataset, b.Dataset); c != 0 {
			return c < 0
		}
		return tables.NaturalCompare(a.Network, b.Network) < 0
	})
}

// averageDescriptiveRow builds the group summary row: the mean of
// every numeric column, labelled "Average".
func averageDescriptiveRow(group string, rows []*DescriptiveRow) *DescriptiveRow {
	avg := &DescriptiveRow{Group: group, Network: "Average"}
	if len(rows) == 0 {
		return avg
	}
	for _, r := range rows {
		avg.Sim += r.Sim
		avg.Comp += r.Comp
		avg.NNodes += r.NNodes
		avg.RelSize += r.RelSize
		avg.Density += r.Density
		avg.Dbar += r.Dbar
		avg.Dcv += r.Dcv
		avg.Dmax += r.Dmax
	}
	n := float64(len(rows))
	avg.Sim /= n
	avg.Comp /= n
	avg.NNodes /= n
	avg.RelSize /= n
	avg.Density /= n
	avg.Dbar /= n
	avg.Dcv /= n
	avg.Dmax /= n
	return avg
}

// renderDescriptiveTables renders one threeparttable per group into
// a single .tex document, separated by blank lines.
func renderDescriptiveTables(groups []descriptiveGroup) (string, error) {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		tex, err := renderDescriptiveTable(g)
		if err != nil {
			return "", err
		}
		parts = append(parts, tex)
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

func renderDescriptiveTable(g descriptiveGroup) (string, error) {
	caption, ok := descriptiveCaptions[g.name]
	if !ok {
		return "", fmt.Errorf("no table caption for group %q", g.name)
	}

	t := tables.LatexTable{
		Caption:      fmt.Sprintf("Descriptive statistics for %s ($N = %d$)", caption, len(g.rows)),
		Label:        "app:tab:stats-" + g.name,
		IndexHeaders: []string{"domain", "dataset", "network"},
		ValueHeaders: descriptiveSymbols,
		AverageRow:   descriptiveCells(g.average, true),
		Notes:        descriptiveNotes,
	}
	for _, r := range g.rows {
		t.Rows = append(t.Rows, descriptiveCells(r, false))
	}

	tex, err := t.Render()
	if err != nil {
		return "", fmt.Errorf("failed to render table for %q: %w", g.name, err)
	}
	return tex, nil
}

// descriptiveCells formats one row for LaTeX. Node counts and the
// maximum degree are whole numbers in data rows but become fractional
// in the Average row.
func descriptiveCells(r *DescriptiveRow, average bool) []string {
	nNodes := strconv.Itoa(int(r.NNodes))
	dmax := strconv.Itoa(int(r.Dmax))
	if average {
		nNodes = fmt.Sprintf("%.2f", r.NNodes)
		dmax = fmt.Sprintf("%.2f", r.Dmax)
	}
	return []string{
		r.Domain, r.Dataset, r.Network,
		fmt.Sprintf("%.2f", r.Sim),
		fmt.Sprintf("%.2f", r.Comp),
		nNodes,
		fmt.Sprintf("%.2f", r.RelSize),
		fmt.Sprintf("%.2f", r.Density),
		fmt.Sprintf("%.2f", r.Dbar),
		fmt.Sprintf("%.2f", r.Dcv),
		dmax,
	}
}
