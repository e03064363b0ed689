// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"fmt"
	"math"
	"math/rand"
)

// NewErdosRenyi samples a G(n, p) random graph with edge probability
// p = kbar / (n-1), so the expected average degree is kbar. The
// performance track uses these as census workloads.
func NewErdosRenyi(n int, kbar float64, rng *rand.Rand) (*Graph, error) {
	if n < 2 {
		return nil, fmt.Errorf("erdos-renyi: need at least 2 vertices, got %d", n)
	}
	p := kbar / float64(n-1)
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("erdos-renyi: kbar %.3f out of range for n=%d", kbar, n)
	}

	g := New(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				g.edges = append(g.edges, [2]int{i, j})
			}
		}
	}
	return g, nil
}

// NewRandomGeometric samples a random geometric graph on the unit
// torus: n points placed uniformly, connected when their toroidal
// distance is below r = sqrt(kbar / (pi (n-1))), which again targets
// an average degree of kbar.
func NewRandomGeometric(n int, kbar float64, rng *rand.Rand) (*Graph, error) {
	if n < 2 {
		return nil, fmt.Errorf("random-geometric: need at least 2 vertices, got %d", n)
	}
	if kbar <= 0 || kbar > float64(n-1) {
		return nil, fmt.Errorf("random-geometric: kbar %.3f out of range for n=%d", kbar, n)
	}
	radius := math.Sqrt(kbar / (math.Pi * float64(n-1)))

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.Float64()
		ys[i] = rng.Float64()
	}

	g := New(n)
	r2 := radius * radius
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := torusDelta(xs[i], xs[j])
			dy := torusDelta(ys[i], ys[j])
			if dx*dx+dy*dy < r2 {
				g.edges = append(g.edges, [2]int{i, j})
			}
		}
	}
	return g, nil
}

// torusDelta is the wrap-around distance between two coordinates on
// a unit circle.
func torusDelta(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 0.5 {
		d = 1 - d
	}
	return d
}

// Rescale maps xs linearly onto [lo, hi]. A constant input has no
// source range and collapses to lo. It fails on an empty input or an
// inverted target range.
func Rescale(xs []float64, lo, hi float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("rescale: empty input")
	}
	if lo >= hi {
		return nil, fmt.Errorf("rescale: invalid target range [%.3f, %.3f]", lo, hi)
	}

	min, max := xs[0], xs[0]
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	out := make([]float64, len(xs))
	if min == max {
		for i := range out {
			out[i] = lo
		}
		return out, nil
	}
	scale := (hi - lo) / (max - min)
	for i, x := range xs {
		out[i] = (x-min)*scale + lo
	}
	return out, nil
}
