// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"math"
	"testing"
)

// triangle with a pendant vertex: 0-1, 1-2, 2-0, 2-3
func buildPath(t *testing.T) *Graph {
	t.Helper()
	g := New(4)
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v) error = %v", e, err)
		}
	}
	return g
}

func TestAddEdge_OutOfRange(t *testing.T) {
	g := New(2)
	if err := g.AddEdge(0, 2); err == nil {
		t.Error("AddEdge(0, 2) on 2 vertices should fail")
	}
	if err := g.AddEdge(-1, 0); err == nil {
		t.Error("AddEdge(-1, 0) should fail")
	}
}

func TestDegrees(t *testing.T) {
	g := buildPath(t)
	want := []int{2, 2, 3, 1}
	got := g.Degrees()
	for i, d := range want {
		if got[i] != d {
			t.Errorf("degree[%d] = %d, want %d", i, got[i], d)
		}
	}
}

func TestDegrees_SelfLoop(t *testing.T) {
	g := New(2)
	g.AddEdge(0, 0)
	g.AddEdge(0, 1)
	got := g.Degrees()
	if got[0] != 2 || got[1] != 1 {
		t.Errorf("degrees = %v, want [2 1]", got)
	}
}

func TestDensity(t *testing.T) {
	g := buildPath(t)
	// 4 edges over 4 vertices: 2*4 / (4*3)
	want := 8.0 / 12.0
	if got := g.Density(); math.Abs(got-want) > 1e-12 {
		t.Errorf("Density() = %v, want %v", got, want)
	}

	if got := New(1).Density(); got != 0 {
		t.Errorf("Density() of single vertex = %v, want 0", got)
	}
}

func TestDegreeStats(t *testing.T) {
	g := buildPath(t)
	stats := g.DegreeStats()

	if stats.Mean != 2.0 {
		t.Errorf("Mean = %v, want 2.0", stats.Mean)
	}
	if stats.Min != 1 || stats.Max != 3 {
		t.Errorf("Min/Max = %d/%d, want 1/3", stats.Min, stats.Max)
	}
	// degrees 2,2,3,1: population std = sqrt(2/4), CV = std / 2
	wantCV := math.Sqrt(0.5) / 2.0
	if math.Abs(stats.CV-wantCV) > 1e-12 {
		t.Errorf("CV = %v, want %v", stats.CV, wantCV)
	}
}

func TestDegreeStats_Empty(t *testing.T) {
	stats := New(0).DegreeStats()
	if stats.Mean != 0 || stats.CV != 0 {
		t.Errorf("empty graph stats = %+v, want zero value", stats)
	}
}

func TestSubgraph(t *testing.T) {
	g := buildPath(t)
	g.SetLabels([]string{"a", "b", "c", "d"})

	sub := g.Subgraph([]int{1, 2, 3})
	if sub.NumVertices() != 3 {
		t.Fatalf("NumVertices() = %d, want 3", sub.NumVertices())
	}
	// Edges within {1,2,3}: 1-2 and 2-3.
	if sub.NumEdges() != 2 {
		t.Errorf("NumEdges() = %d, want 2", sub.NumEdges())
	}
	if sub.Label(0) != "b" || sub.Label(2) != "d" {
		t.Errorf("labels not carried: %q, %q", sub.Label(0), sub.Label(2))
	}
}

func TestLabel_Fallback(t *testing.T) {
	g := New(3)
	if got := g.Label(2); got != "2" {
		t.Errorf("Label(2) = %q, want \"2\"", got)
	}
}

func TestSetLabels_LengthMismatch(t *testing.T) {
	g := New(3)
	if err := g.SetLabels([]string{"only", "two"}); err == nil {
		t.Error("SetLabels with wrong length should fail")
	}
}
