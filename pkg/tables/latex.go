// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tables

import (
	"fmt"
	"strings"
)

// LatexTable describes a threeparttable render: left-aligned index
// columns, right-aligned value columns, an optional bolded summary
// row, and footnotes explaining the column symbols.
type LatexTable struct {
	Caption      string
	Label        string
	IndexHeaders []string
	ValueHeaders []string

	// Rows hold pre-formatted cells, index columns first. Index
	// cells repeated from the previous row render blank.
	Rows [][]string

	// AverageRow, when set, renders after a midrule with every cell
	// bolded.
	AverageRow []string

	Notes []string
}

// Render produces the LaTeX source for the table.
func (t *LatexTable) Render() (string, error) {
	width := len(t.IndexHeaders) + len(t.ValueHeaders)
	if width == 0 {
		return "", fmt.Errorf("latex table %q has no columns", t.Label)
	}
	for i, row := range t.Rows {
		if len(row) != width {
			return "", fmt.Errorf("latex table %q row %d has %d cells, want %d",
				t.Label, i, len(row), width)
		}
	}
	if t.AverageRow != nil && len(t.AverageRow) != width {
		return "", fmt.Errorf("latex table %q average row has %d cells, want %d",
			t.Label, len(t.AverageRow), width)
	}

	var b strings.Builder
	b.WriteString("\\begin{table}[h!]\n")
	b.WriteString("\\centering\n")
	fmt.Fprintf(&b, "\\caption{%s}\n", t.Caption)
	fmt.Fprintf(&b, "\\label{%s}\n", t.Label)
	b.WriteString("\\sffamily\n")
	b.WriteString("\\footnotesize\n")
	b.WriteString("\\begin{threeparttable}\n")
	fmt.Fprintf(&b, "\\begin{tabular}{%s%s}\n",
		strings.Repeat("l", len(t.IndexHeaders)),
		strings.Repeat("r", len(t.ValueHeaders)))
	b.WriteString("\\toprule\n")

	// Value symbols ride above the data columns; the index names get
	// their own line, mirroring a multi-index table header.
	header := make([]string, 0, width)
	for range t.IndexHeaders {
		header = append(header, "")
	}
	header = append(header, t.ValueHeaders...)
	writeRow(&b, header)

	names := make([]string, 0, width)
	names = append(names, t.IndexHeaders...)
	for range t.ValueHeaders {
		names = append(names, "")
	}
	writeRow(&b, names)
	b.WriteString("\\midrule\n")

	prev := make([]string, len(t.IndexHeaders))
	for _, row := range t.Rows {
		cells := make([]string, width)
		blankPrefix := true
		for i := range t.IndexHeaders {
			if blankPrefix && row[i] == prev[i] {
				cells[i] = ""
			} else {
				blankPrefix = false
				cells[i] = escapeUnderscores(row[i])
			}
			prev[i] = row[i]
		}
		for i := len(t.IndexHeaders); i < width; i++ {
			cells[i] = escapeUnderscores(row[i])
		}
		writeRow(&b, cells)
	}

	if t.AverageRow != nil {
		b.WriteString("\\midrule\n")
		cells := make([]string, width)
		for i, cell := range t.AverageRow {
			if cell == "" {
				cells[i] = ""
				continue
			}
			cells[i] = fmt.Sprintf("\\textbf{%s}", escapeUnderscores(cell))
		}
		writeRow(&b, cells)
	}

	b.WriteString("\\bottomrule\n")
	b.WriteString("\\end{tabular}\n")
	if len(t.Notes) > 0 {
		b.WriteString("\\begin{tablenotes}\n")
		b.WriteString("\t\\footnotesize\n")
		for _, note := range t.Notes {
			fmt.Fprintf(&b, "\t\\item %s\n", note)
		}
		b.WriteString("\\end{tablenotes}\n")
	}
	b.WriteString("\\end{threeparttable}\n")
	b.WriteString("\\end{table}")
	return b.String(), nil
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString(strings.Join(cells, " & "))
	b.WriteString(" \\\\\n")
}

func escapeUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", "\\_")
}
