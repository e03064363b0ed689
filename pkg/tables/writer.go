// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tables writes derived tables under an output root:
//
//	<output_root>/<track>/<table>.<ext>
//
// Tables are written whole, through a temp file promoted with an
// atomic rename, so a rerun or an interrupt never leaves a partial
// table behind. Row types drive the CSV layout through csv struct
// tags.
package tables

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/AleutianAI/graphcensus/pkg/logging"
)

// Writer persists track tables. Safe for concurrent use as long as
// distinct calls target distinct tables.
type Writer struct {
	root   string
	logger *logging.Logger
}

// NewWriter creates a Writer rooted at root.
func NewWriter(root string, logger *logging.Logger) (*Writer, error) {
	if root == "" {
		return nil, errors.New("output root is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{root: root, logger: logger}, nil
}

// Root returns the output root directory.
func (w *Writer) Root() string {
	return w.root
}

// Path returns where a table lands, whether or not it exists yet.
func (w *Writer) Path(track, table, ext string) string {
	return filepath.Join(w.root, track, table+"."+ext)
}

// WriteCSV marshals rows (a slice of csv-tagged structs) and writes
// the table, returning its path.
func (w *Writer) WriteCSV(track, table string, rows interface{}) (string, error) {
	content, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return "", fmt.Errorf("marshal table %s/%s: %w", track, table, err)
	}
	return w.WriteFile(track, table, "csv", content)
}

// WriteFile writes raw table content, returning its path.
func (w *Writer) WriteFile(track, table, ext string, content []byte) (string, error) {
	dest := w.Path(track, table, ext)
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+table+"-*")
	if err != nil {
		return "", fmt.Errorf("create table temp file: %w", err)
	}

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write table %s: %w", dest, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("promote table %s: %w", dest, err)
	}

	w.logger.Debug("table written", "path", dest, "bytes", len(content))
	return dest, nil
}
