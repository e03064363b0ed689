// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadEdgeList parses a CSV edge list into a Graph.
//
// The first two columns of each record are the endpoint labels;
// extra columns (weights, timestamps) are ignored. Lines starting
// with '#' are comments. A leading "source,target" header row is
// skipped. Vertex labels may be arbitrary strings and are relabeled
// to dense IDs in first-seen order, with the originals retained.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	ids := make(map[string]int)
	var labels []string
	var edges [][2]int

	intern := func(label string) int {
		if id, ok := ids[label]; ok {
			return id
		}
		id := len(labels)
		ids[label] = id
		labels = append(labels, label)
		return id
	}

	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading edge list: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("edge record has %d fields, want at least 2", len(record))
		}

		a := strings.TrimSpace(record[0])
		b := strings.TrimSpace(record[1])

		if first {
			first = false
			if isHeader(a, b) {
				continue
			}
		}
		if a == "" || b == "" {
			return nil, fmt.Errorf("edge record with empty endpoint: %q", record)
		}

		edges = append(edges, [2]int{intern(a), intern(b)})
	}

	g := New(len(labels))
	g.labels = labels
	g.edges = edges
	return g, nil
}

// isHeader reports whether the two leading fields look like the
// conventional edge-list header row.
func isHeader(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return (a == "source" && b == "target") || (a == "from" && b == "to")
}

// LoadFile reads a CSV edge list from disk.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge list: %w", err)
	}
	defer f.Close()

	g, err := ReadEdgeList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
