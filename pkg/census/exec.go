// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package census

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/AleutianAI/graphcensus/pkg/graph"
)

// ErrNotConfigured is returned when no engine command is set. The
// CLI turns this into a fail-fast configuration error before any
// datasets are processed.
var ErrNotConfigured = errors.New("census engine command not configured")

// ExecEngine runs the external census engine as a subprocess.
//
// One request is one process invocation: the graph is written to the
// engine's stdin as JSON and the statistics are read back from its
// stdout. The wire format is
//
//	-> {"op":"census","graph":{"n":34,"edges":[[0,1],[1,2],...]}}
//	<- {"stats":{"sim_g":0.26,"comp_g":0.04,...}}
//	<- {"error":"singular degree sequence"}
//
// A non-zero exit, malformed output, or a reported error all surface
// as ordinary errors; the preparation driver adds dataset context.
type ExecEngine struct {
	// Command is the engine executable (absolute path or on $PATH).
	Command string

	// Args are fixed arguments prepended to every invocation.
	Args []string

	// Env is appended to the inherited environment. Useful for
	// engine tuning knobs such as OMP_NUM_THREADS.
	Env []string

	// Timeout bounds a single census call. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration
}

type execRequest struct {
	Op    string    `json:"op"`
	Graph execGraph `json:"graph"`
}

type execGraph struct {
	N     int      `json:"n"`
	Edges [][2]int `json:"edges"`
}

type execResponse struct {
	Stats map[string]float64 `json:"stats,omitempty"`
	Error string             `json:"error,omitempty"`
}

// Census invokes the engine once for g and decodes its statistics.
func (e *ExecEngine) Census(ctx context.Context, g *graph.Graph) (Result, error) {
	if e.Command == "" {
		return nil, ErrNotConfigured
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(execRequest{
		Op: "census",
		Graph: execGraph{
			N:     g.NumVertices(),
			Edges: g.Edges(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding census request: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("census engine: %w", ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("census engine: %w: %s", err, firstLine(msg))
		}
		return nil, fmt.Errorf("census engine: %w", err)
	}

	var resp execResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("decoding census response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("census engine: %s", resp.Error)
	}
	if resp.Stats == nil {
		return nil, fmt.Errorf("census engine returned no statistics")
	}
	return Result(resp.Stats), nil
}

// Version runs `<command> --version` and returns the first output
// line. The init task checks it against the configured minimum.
func (e *ExecEngine) Version(ctx context.Context) (string, error) {
	if e.Command == "" {
		return "", ErrNotConfigured
	}

	args := append(append([]string{}, e.Args...), "--version")
	cmd := exec.CommandContext(ctx, e.Command, args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("probing census engine version: %w", err)
	}

	version := firstLine(strings.TrimSpace(string(out)))
	if version == "" {
		return "", fmt.Errorf("census engine printed no version")
	}
	return version, nil
}

// firstLine trims everything after the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

var _ Engine = (*ExecEngine)(nil)
