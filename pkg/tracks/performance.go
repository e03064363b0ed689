// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracks

import (
	"fmt"
	"strings"
)

// PerformanceRepetitions is how many times the census runs per
// workload when timing.
const PerformanceRepetitions = 5

// performanceSeed anchors the generator seeds so the timing workloads
// are identical across runs.
const performanceSeed = 303

// performanceKbar is the target average degree of every workload.
const performanceKbar = 10

// performanceSizes is the vertex-count ladder.
var performanceSizes = []int{1000, 2500, 5000, 10000}

// Workload specifies one synthetic benchmark graph.
type Workload struct {
	// Model is the generator: "er" (Erdős–Rényi) or "rgg" (random
	// geometric graph on the torus).
	Model string

	// N is the vertex count.
	N int

	// Kbar is the target average degree.
	Kbar float64

	// Seed feeds the generator so reruns time the same graph.
	Seed int64

	// Label is the row label.
	Label string
}

// PerformanceWorkloads returns the benchmark ladder: both generator
// models crossed with the size ladder, smallest first.
func PerformanceWorkloads() []Workload {
	models := []string{"er", "rgg"}
	workloads := make([]Workload, 0, len(models)*len(performanceSizes))
	for _, model := range models {
		for _, n := range performanceSizes {
			workloads = append(workloads, Workload{
				Model: model,
				N:     n,
				Kbar:  performanceKbar,
				Seed:  performanceSeed + int64(len(workloads)),
				Label: fmt.Sprintf("%s (n=%d)", strings.ToUpper(model), n),
			})
		}
	}
	return workloads
}
