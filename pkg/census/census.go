// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package census defines the contract to the external structural
// census engine.
//
// The engine computing the path-census coefficients is a separately
// versioned package and is never reimplemented here. The pipeline
// depends on it only through the narrow Engine interface: a graph in
// adjacency form goes in, a mapping of named numeric statistics comes
// out, and failures surface as a ComputationError carrying the
// dataset name. ExecEngine is the production implementation, running
// the engine as a subprocess; tests substitute an EngineFunc.
package census

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/AleutianAI/graphcensus/pkg/graph"
)

// Statistic names the graph tracks consume. The engine may return
// more; extra keys are ignored.
const (
	// StatSimGlobal is the global similarity (clustering) coefficient.
	StatSimGlobal = "sim_g"

	// StatSim is the node-wise similarity coefficient averaged over nodes.
	StatSim = "sim"

	// StatSimEdges is the edge-wise similarity coefficient averaged over edges.
	StatSimEdges = "sim_e"

	// StatCompGlobal is the global complementarity coefficient.
	StatCompGlobal = "comp_g"

	// StatComp is the node-wise complementarity coefficient averaged over nodes.
	StatComp = "comp"

	// StatCompEdges is the edge-wise complementarity coefficient averaged over edges.
	StatCompEdges = "comp_e"
)

// CoefficientKeys lists the statistics every graph track requires
// from the engine.
var CoefficientKeys = []string{
	StatSimGlobal, StatSim, StatSimEdges,
	StatCompGlobal, StatComp, StatCompEdges,
}

// Result maps statistic names to their computed values for one graph.
type Result map[string]float64

// Require checks that every named statistic is present and finite.
// It returns a single error listing all missing or non-finite keys.
func (r Result) Require(keys ...string) error {
	var bad []string
	for _, key := range keys {
		v, ok := r[key]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("engine result missing statistics: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Engine computes the structural census for a graph.
//
// Implementations must be safe for sequential reuse across datasets
// within one pipeline run. Census must honor ctx cancellation.
type Engine interface {
	Census(ctx context.Context, g *graph.Graph) (Result, error)
}

// EngineFunc adapts a function to the Engine interface, mirroring
// http.HandlerFunc. Tests use it to stub the engine.
type EngineFunc func(ctx context.Context, g *graph.Graph) (Result, error)

// Census calls f.
func (f EngineFunc) Census(ctx context.Context, g *graph.Graph) (Result, error) {
	return f(ctx, g)
}

// ComputationError wraps an engine failure with the dataset it
// occurred on. The preparation driver records these per dataset
// instead of aborting the batch.
type ComputationError struct {
	// Dataset is the qualified dataset name (collection/net).
	Dataset string

	// Err is the underlying engine error.
	Err error
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	return fmt.Sprintf("computing census for %s: %v", e.Dataset, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ComputationError) Unwrap() error {
	return e.Err
}
