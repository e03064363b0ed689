// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"testing"
)

func TestSimplify(t *testing.T) {
	g := New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0) // parallel, reversed
	g.AddEdge(1, 1) // self-loop
	g.AddEdge(1, 2)

	s := g.Simplify()
	if s.NumEdges() != 2 {
		t.Errorf("NumEdges() = %d, want 2", s.NumEdges())
	}
	if s.NumVertices() != 3 {
		t.Errorf("NumVertices() = %d, want 3", s.NumVertices())
	}
	for _, e := range s.Edges() {
		if e[0] == e[1] {
			t.Errorf("self-loop survived: %v", e)
		}
	}
}

// two components: a 4-cycle and an edge, plus an isolated vertex
func buildThreeComponents(t *testing.T) *Graph {
	t.Helper()
	g := New(7)
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestComponents(t *testing.T) {
	g := buildThreeComponents(t)
	comps := g.Components()

	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3", len(comps))
	}
	if len(comps[0]) != 4 || len(comps[1]) != 2 || len(comps[2]) != 1 {
		t.Errorf("component sizes = %d,%d,%d; want 4,2,1",
			len(comps[0]), len(comps[1]), len(comps[2]))
	}
	if comps[0][0] != 0 {
		t.Errorf("largest component should contain vertex 0, got %v", comps[0])
	}
	if comps[2][0] != 6 {
		t.Errorf("singleton should be vertex 6, got %v", comps[2])
	}
}

func TestGiantComponent(t *testing.T) {
	g := buildThreeComponents(t)
	giant := g.GiantComponent()
	if giant.NumVertices() != 4 || giant.NumEdges() != 4 {
		t.Errorf("giant = %d vertices, %d edges; want 4, 4",
			giant.NumVertices(), giant.NumEdges())
	}
}

func TestNthComponent(t *testing.T) {
	g := buildThreeComponents(t)

	second, err := g.NthComponent(2)
	if err != nil {
		t.Fatalf("NthComponent(2) error = %v", err)
	}
	if second.NumVertices() != 2 || second.NumEdges() != 1 {
		t.Errorf("second component = %d vertices, %d edges; want 2, 1",
			second.NumVertices(), second.NumEdges())
	}

	if _, err := g.NthComponent(0); err == nil {
		t.Error("NthComponent(0) should fail (1-based)")
	}
	if _, err := g.NthComponent(4); err == nil {
		t.Error("NthComponent(4) should fail with 3 components")
	}
}

func TestPreprocess(t *testing.T) {
	g := New(5)
	g.AddEdge(0, 1)
	g.AddEdge(0, 1) // duplicate
	g.AddEdge(1, 2)
	g.AddEdge(2, 2) // loop
	g.AddEdge(3, 4) // smaller component

	p := g.Preprocess()
	if p.NumVertices() != 3 {
		t.Errorf("NumVertices() = %d, want 3", p.NumVertices())
	}
	if p.NumEdges() != 2 {
		t.Errorf("NumEdges() = %d, want 2", p.NumEdges())
	}
}
