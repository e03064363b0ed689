// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package graph provides the undirected graph representation the
// pipeline hands to the census engine, plus the small set of
// operations the preparation tracks need: edge-list loading,
// simplification, component extraction, degree statistics, and the
// synthetic generators used by the performance track.
//
// Graphs are stored as a dense-vertex edge list. Vertices are
// relabeled to 0..n-1 on load; original labels are retained for
// reporting. The structural census itself is out of scope and lives
// behind the census.Engine contract.
package graph

import (
	"fmt"
	"math"
	"sort"
)

// Graph is an undirected graph over dense vertex IDs 0..n-1.
//
// The edge list may contain self-loops and parallel edges as loaded;
// Simplify returns a cleaned copy. Graph is immutable after
// construction apart from AddEdge during building, so it is safe to
// share across readers.
type Graph struct {
	// n is the number of vertices.
	n int

	// edges holds undirected edges as loaded (u, v pairs).
	edges [][2]int

	// labels maps dense vertex IDs back to original labels.
	// Nil when vertices were created unnamed (generators).
	labels []string
}

// New creates an empty graph with n vertices and no edges.
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{n: n}
}

// AddEdge appends the undirected edge (u, v). Self-loops and
// parallel edges are accepted here and removed by Simplify.
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return fmt.Errorf("edge (%d, %d) out of range for %d vertices", u, v, g.n)
	}
	g.edges = append(g.edges, [2]int{u, v})
	return nil
}

// NumVertices returns the vertex count.
func (g *Graph) NumVertices() int { return g.n }

// NumEdges returns the edge count, counting parallel edges and
// self-loops as loaded.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Edges returns the underlying edge list. Callers must not modify it.
func (g *Graph) Edges() [][2]int { return g.edges }

// Label returns the original label of vertex v, or its decimal ID
// when the graph carries no labels.
func (g *Graph) Label(v int) string {
	if g.labels != nil && v >= 0 && v < len(g.labels) {
		return g.labels[v]
	}
	return fmt.Sprintf("%d", v)
}

// SetLabels attaches original vertex labels. len(labels) must equal
// NumVertices.
func (g *Graph) SetLabels(labels []string) error {
	if len(labels) != g.n {
		return fmt.Errorf("got %d labels for %d vertices", len(labels), g.n)
	}
	g.labels = labels
	return nil
}

// Adjacency builds adjacency lists. Neighbors appear once per
// parallel edge; self-loops contribute a single entry.
func (g *Graph) Adjacency() [][]int {
	adj := make([][]int, g.n)
	for _, e := range g.edges {
		u, v := e[0], e[1]
		adj[u] = append(adj[u], v)
		if u != v {
			adj[v] = append(adj[v], u)
		}
	}
	return adj
}

// Degrees returns the degree sequence. Self-loops count once,
// matching the simplified graphs the tracks operate on.
func (g *Graph) Degrees() []int {
	deg := make([]int, g.n)
	for _, e := range g.edges {
		deg[e[0]]++
		if e[0] != e[1] {
			deg[e[1]]++
		}
	}
	return deg
}

// Density returns 2m / (n (n-1)), the density of a simple undirected
// graph. Zero for graphs with fewer than two vertices.
func (g *Graph) Density() float64 {
	if g.n < 2 {
		return 0
	}
	return 2 * float64(len(g.edges)) / (float64(g.n) * float64(g.n-1))
}

// DegreeStats summarizes the degree sequence.
type DegreeStats struct {
	// Mean is the average degree.
	Mean float64

	// CV is the coefficient of variation (population std / mean).
	// Zero when the mean is zero.
	CV float64

	// Min and Max are the extreme degrees.
	Min int
	Max int
}

// DegreeStats computes mean, coefficient of variation, and extrema
// of the degree sequence. The zero value is returned for an empty
// graph.
func (g *Graph) DegreeStats() DegreeStats {
	if g.n == 0 {
		return DegreeStats{}
	}

	deg := g.Degrees()
	var sum int
	min, max := deg[0], deg[0]
	for _, d := range deg {
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	mean := float64(sum) / float64(g.n)

	var varsum float64
	for _, d := range deg {
		diff := float64(d) - mean
		varsum += diff * diff
	}
	std := math.Sqrt(varsum / float64(g.n))

	stats := DegreeStats{Mean: mean, Min: min, Max: max}
	if mean > 0 {
		stats.CV = std / mean
	}
	return stats
}

// Subgraph returns the subgraph induced by the given vertices,
// relabeled to 0..len(vertices)-1 in the given order. Labels are
// carried over. Edges with an endpoint outside the set are dropped.
func (g *Graph) Subgraph(vertices []int) *Graph {
	remap := make(map[int]int, len(vertices))
	for i, v := range vertices {
		remap[v] = i
	}

	sub := New(len(vertices))
	if g.labels != nil {
		labels := make([]string, len(vertices))
		for i, v := range vertices {
			labels[i] = g.labels[v]
		}
		sub.labels = labels
	}

	for _, e := range g.edges {
		u, okU := remap[e[0]]
		v, okV := remap[e[1]]
		if okU && okV {
			sub.edges = append(sub.edges, [2]int{u, v})
		}
	}
	return sub
}

// sortedCopy returns the edges normalized (u <= v) and sorted, used
// by Simplify and tests that need a canonical ordering.
func (g *Graph) sortedCopy() [][2]int {
	edges := make([][2]int, len(g.edges))
	for i, e := range g.edges {
		u, v := e[0], e[1]
		if u > v {
			u, v = v, u
		}
		edges[i] = [2]int{u, v}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}
