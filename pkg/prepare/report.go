// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package prepare

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/graphcensus/pkg/ux"
)

// Failure records one dataset that could not be processed.
type Failure struct {
	// Dataset is the row key of the failed entry.
	Dataset string

	// Err is the failure message.
	Err string
}

// Report summarizes one track run. Per-dataset failures live here
// rather than aborting the batch; the caller inspects Failed() to
// decide the exit code.
type Report struct {
	// RunID uniquely identifies this run in logs and artifacts.
	RunID string

	// Track is the track that ran.
	Track string

	// Started and Finished bound the run.
	Started  time.Time
	Finished time.Time

	// Total is the number of entries the run attempted.
	Total int

	// Successes lists the row keys that produced a table row.
	Successes []string

	// Failures lists the entries that did not.
	Failures []Failure

	// Tables lists the artifact paths written.
	Tables []string
}

func newReport(track string) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Track:   track,
		Started: time.Now(),
	}
}

func (r *Report) addSuccess(key string) {
	r.Successes = append(r.Successes, key)
}

func (r *Report) addFailure(key string, err error) {
	r.Failures = append(r.Failures, Failure{Dataset: key, Err: err.Error()})
}

func (r *Report) finish() {
	r.Finished = time.Now()
}

// Failed reports whether any dataset failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Render writes a human-readable summary to w.
func (r *Report) Render(w io.Writer) {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s\n", r.RunID)
	fmt.Fprintf(&b, "%d/%d datasets processed in %s\n",
		len(r.Successes), r.Total, r.Duration().Round(time.Millisecond))
	for _, path := range r.Tables {
		fmt.Fprintf(&b, "%s %s\n", ux.IconArrow.Render(), path)
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "\n%d failed:\n", len(r.Failures))
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "%s %s: %s\n", ux.IconBullet.Render(), f.Dataset, f.Err)
		}
	}

	title := fmt.Sprintf("%s %s", r.Track, statusWord(r))
	ux.Fbox(w, title, strings.TrimRight(b.String(), "\n"))
}

func statusWord(r *Report) string {
	if r.Failed() {
		return "completed with failures"
	}
	return "completed"
}
