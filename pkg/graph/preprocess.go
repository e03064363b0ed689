// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"fmt"
	"sort"
)

// Simplify returns a copy with self-loops and parallel edges removed.
// Vertex count and labels are unchanged.
func (g *Graph) Simplify() *Graph {
	out := New(g.n)
	out.labels = g.labels

	seen := make(map[[2]int]struct{}, len(g.edges))
	for _, e := range g.sortedCopy() {
		if e[0] == e[1] {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out.edges = append(out.edges, e)
	}
	return out
}

// Components returns the connected components as vertex lists,
// largest first. Ties break on the smallest contained vertex ID so
// the ordering is deterministic. Isolated vertices form singleton
// components.
func (g *Graph) Components() [][]int {
	adj := g.Adjacency()
	visited := make([]bool, g.n)
	var components [][]int

	for start := 0; start < g.n; start++ {
		if visited[start] {
			continue
		}
		// BFS from start.
		queue := []int{start}
		visited[start] = true
		var comp []int
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, w := range adj[v] {
				if !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
		}
		sort.Ints(comp)
		components = append(components, comp)
	}

	sort.SliceStable(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	return components
}

// GiantComponent returns the subgraph induced by the largest
// connected component. An empty graph is returned unchanged.
func (g *Graph) GiantComponent() *Graph {
	comps := g.Components()
	if len(comps) == 0 {
		return g
	}
	return g.Subgraph(comps[0])
}

// NthComponent returns the subgraph induced by the k-th largest
// component (1-based). Some datasets publish several study sites as
// one file; the domains track uses this to split them.
func (g *Graph) NthComponent(k int) (*Graph, error) {
	if k < 1 {
		return nil, fmt.Errorf("component index %d out of range (1-based)", k)
	}
	comps := g.Components()
	if k > len(comps) {
		return nil, fmt.Errorf("component index %d out of range: graph has %d components", k, len(comps))
	}
	return g.Subgraph(comps[k-1]), nil
}

// Preprocess applies the standard preparation used across all
// analysis tracks: simplify, then keep only the giant component.
func (g *Graph) Preprocess() *Graph {
	return g.Simplify().GiantComponent()
}
