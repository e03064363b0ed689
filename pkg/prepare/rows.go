// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package prepare

// CensusRow is one dataset's output in a census track table: the
// identifying metadata, the structural glue statistics computed
// in-process, and the six coefficients reported by the engine. All
// structural statistics describe the preprocessed graph; FracTotal
// relates it back to the raw download.
type CensusRow struct {
	Dataset  string `csv:"dataset"`
	Network  string `csv:"network"`
	Label    string `csv:"label"`
	Domain   string `csv:"domain"`
	Relation string `csv:"relation"`
	Desc     string `csv:"desc"`

	NNodes    int     `csv:"n_nodes"`
	NEdges    int     `csv:"n_edges"`
	FracTotal float64 `csv:"frac_total"`
	Density   float64 `csv:"density"`
	Dbar      float64 `csv:"dbar"`
	Dcv       float64 `csv:"dcv"`
	Dmin      int     `csv:"dmin"`
	Dmax      int     `csv:"dmax"`

	SimGlobal  float64 `csv:"sim_g"`
	Sim        float64 `csv:"sim"`
	SimEdges   float64 `csv:"sim_e"`
	CompGlobal float64 `csv:"comp_g"`
	Comp       float64 `csv:"comp"`
	CompEdges  float64 `csv:"comp_e"`
}

// DescriptiveRow is one row of the aggregate descriptive statistics
// table. NNodes is a float because the per-group Average row carries
// fractional means.
type DescriptiveRow struct {
	Domain  string `csv:"domain"`
	Group   string `csv:"group"`
	Dataset string `csv:"dataset"`
	Network string `csv:"network"`

	Sim     float64 `csv:"sim"`
	Comp    float64 `csv:"comp"`
	NNodes  float64 `csv:"n_nodes"`
	RelSize float64 `csv:"relsize"`
	Density float64 `csv:"density"`
	Dbar    float64 `csv:"dbar"`
	Dcv     float64 `csv:"dcv"`
	Dmax    float64 `csv:"dmax"`
}

// PerformanceRow is one synthetic workload's output: graph metadata
// plus census wall-time statistics over the repetitions.
type PerformanceRow struct {
	Label string `csv:"label"`
	Model string `csv:"model"`
	Seed  int64  `csv:"seed"`

	NNodes  int     `csv:"n_nodes"`
	NEdges  int     `csv:"n_edges"`
	Density float64 `csv:"density"`
	Dmin    int     `csv:"dmin"`
	Dmax    int     `csv:"dmax"`
	Dbar    float64 `csv:"dbar"`
	Dcv     float64 `csv:"dcv"`
	Clust   float64 `csv:"clust"`

	TimeMean float64 `csv:"time_mean"`
	TimeSD   float64 `csv:"time_sd"`
	TimeMin  float64 `csv:"time_min"`
	TimeMax  float64 `csv:"time_max"`
}
