// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/AleutianAI/graphcensus/pkg/graph"
)

// helperEngine builds an ExecEngine that re-runs this test binary in
// TestHelperProcess mode, the standard trick for exercising
// subprocess code without external fixtures.
func helperEngine(mode string) *ExecEngine {
	return &ExecEngine{
		Command: os.Args[0],
		Args:    []string{"-test.run=TestHelperProcess", "--"},
		Env: []string{
			"GO_WANT_HELPER_PROCESS=1",
			"CENSUS_HELPER_MODE=" + mode,
		},
	}
}

// TestHelperProcess is not a real test; it acts as the fake census
// engine for the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("CENSUS_HELPER_MODE") {
	case "ok":
		var req execRequest
		if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
			fmt.Fprintln(os.Stderr, "bad request:", err)
			os.Exit(2)
		}
		stats := map[string]float64{
			"sim_g": 0.26, "sim": 0.24, "sim_e": 0.22,
			"comp_g": 0.04, "comp": 0.05, "comp_e": 0.06,
			"echo_n": float64(req.Graph.N),
			"echo_m": float64(len(req.Graph.Edges)),
		}
		json.NewEncoder(os.Stdout).Encode(execResponse{Stats: stats})
	case "report-error":
		fmt.Println(`{"error":"degenerate degree sequence"}`)
	case "garbage":
		fmt.Println("Traceback (most recent call last): not json")
	case "crash":
		fmt.Fprintln(os.Stderr, "FATAL: out of memory")
		os.Exit(3)
	case "slow":
		time.Sleep(2 * time.Second)
		fmt.Println(`{"stats":{}}`)
	case "version":
		fmt.Println("pathcensus-cli 0.4.2")
		fmt.Println("numpy 1.26")
	}
	os.Exit(0)
}

func triangle() *graph.Graph {
	g := graph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	return g
}

func TestExecEngine_Census_Success(t *testing.T) {
	engine := helperEngine("ok")
	r, err := engine.Census(context.Background(), triangle())
	if err != nil {
		t.Fatalf("Census() error = %v", err)
	}

	if err := r.Require(CoefficientKeys...); err != nil {
		t.Errorf("Require() error = %v", err)
	}
	// The helper echoes the request so we know the payload crossed
	// the process boundary intact.
	if r["echo_n"] != 3 || r["echo_m"] != 3 {
		t.Errorf("echoed graph = n:%v m:%v, want 3/3", r["echo_n"], r["echo_m"])
	}
}

func TestExecEngine_Census_ReportedError(t *testing.T) {
	engine := helperEngine("report-error")
	_, err := engine.Census(context.Background(), triangle())
	if err == nil {
		t.Fatal("Census() = nil, want error")
	}
	if !strings.Contains(err.Error(), "degenerate degree sequence") {
		t.Errorf("error should carry the engine message, got: %v", err)
	}
}

func TestExecEngine_Census_MalformedOutput(t *testing.T) {
	engine := helperEngine("garbage")
	_, err := engine.Census(context.Background(), triangle())
	if err == nil || !strings.Contains(err.Error(), "decoding census response") {
		t.Errorf("want decode error, got: %v", err)
	}
}

func TestExecEngine_Census_NonZeroExit(t *testing.T) {
	engine := helperEngine("crash")
	_, err := engine.Census(context.Background(), triangle())
	if err == nil {
		t.Fatal("Census() = nil, want error")
	}
	if !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("error should carry stderr context, got: %v", err)
	}
}

func TestExecEngine_Census_Timeout(t *testing.T) {
	engine := helperEngine("slow")
	engine.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err := engine.Census(context.Background(), triangle())
	if err == nil {
		t.Fatal("Census() = nil, want timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want DeadlineExceeded, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestExecEngine_NotConfigured(t *testing.T) {
	engine := &ExecEngine{}
	if _, err := engine.Census(context.Background(), triangle()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("want ErrNotConfigured, got: %v", err)
	}
	if _, err := engine.Version(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Version: want ErrNotConfigured, got: %v", err)
	}
}

func TestExecEngine_Version(t *testing.T) {
	engine := helperEngine("version")
	v, err := engine.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if v != "pathcensus-cli 0.4.2" {
		t.Errorf("Version() = %q, want first line only", v)
	}
}
