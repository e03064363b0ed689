// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the table writers

package tables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/graphcensus/pkg/logging"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := NewWriter(t.TempDir(), logging.New(logging.Config{Quiet: true}))
	require.NoError(t, err)
	return w
}

type sampleRow struct {
	Dataset string  `csv:"dataset"`
	Sim     float64 `csv:"sim"`
	NNodes  int     `csv:"n_nodes"`
}

// TestNewWriter_RequiresRoot verifies the output root is mandatory.
func TestNewWriter_RequiresRoot(t *testing.T) {
	_, err := NewWriter("", nil)
	require.Error(t, err)
}

// TestWriteCSV verifies marshalling, layout, and the returned path.
func TestWriteCSV(t *testing.T) {
	w := newTestWriter(t)

	rows := []sampleRow{
		{Dataset: "karate/78", Sim: 0.2557, NNodes: 34},
		{Dataset: "advogato", Sim: 0.1318, NNodes: 5042},
	}
	path, err := w.WriteCSV("domains", "domains", rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Root(), "domains", "domains.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "dataset,sim,n_nodes", lines[0])
	assert.Contains(t, lines[1], "karate/78")
	assert.Contains(t, lines[2], "5042")
}

// TestWriteCSV_Overwrites verifies a rerun replaces the table whole.
func TestWriteCSV_Overwrites(t *testing.T) {
	w := newTestWriter(t)

	_, err := w.WriteCSV("domains", "domains", []sampleRow{
		{Dataset: "a", Sim: 1, NNodes: 1},
		{Dataset: "b", Sim: 2, NNodes: 2},
	})
	require.NoError(t, err)

	path, err := w.WriteCSV("domains", "domains", []sampleRow{
		{Dataset: "c", Sim: 3, NNodes: 3},
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "a,")
	assert.Contains(t, string(content), "c,")

	// No temp residue in the track directory.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."),
			"leftover temp file %s", e.Name())
	}
}

// TestWriteFile verifies raw content writes for non-CSV artifacts.
func TestWriteFile(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.WriteFile("descriptive", "descriptive", "tex", []byte("\\begin{table}"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Root(), "descriptive", "descriptive.tex"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\\begin{table}", string(content))
}

// TestNaturalCompare verifies human-order comparison.
func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"friendship-2", "friendship-10", -1},
		{"friendship-10", "friendship-2", 1},
		{"healthadvice_9", "healthadvice_11", -1},
		{"advogato", "advogato", 0},
		{"a", "b", -1},
		{"v1.1", "v1.10", -1},
		{"x02", "x2", 0},
		{"net9x", "net10", -1},
		{"", "a", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NaturalCompare(tt.a, tt.b),
			"NaturalCompare(%q, %q)", tt.a, tt.b)
	}

	assert.True(t, NaturalLess("friendship-2", "friendship-10"))
	assert.False(t, NaturalLess("friendship-10", "friendship-2"))
}

// TestLatexTable_Render verifies the full threeparttable layout.
func TestLatexTable_Render(t *testing.T) {
	table := &LatexTable{
		Caption:      "Descriptive statistics for test networks ($N = 3$)",
		Label:        "app:tab:stats-test",
		IndexHeaders: []string{"domain", "dataset", "network"},
		ValueHeaders: []string{"$s$", "$n$"},
		Rows: [][]string{
			{"social", "advogato", "", "0.13", "5042"},
			{"social", "physician_trust", "1", "0.27", "106"},
			{"social", "physician_trust", "2", "0.26", "104"},
		},
		AverageRow: []string{"", "", "Average", "0.22", "1750.67"},
		Notes: []string{
			"$s$ - global similarity (clustering)",
			"$n$ - number of nodes in the giant component",
		},
	}

	got, err := table.Render()
	require.NoError(t, err)

	want := strings.Join([]string{
		"\\begin{table}[h!]",
		"\\centering",
		"\\caption{Descriptive statistics for test networks ($N = 3$)}",
		"\\label{app:tab:stats-test}",
		"\\sffamily",
		"\\footnotesize",
		"\\begin{threeparttable}",
		"\\begin{tabular}{lllrr}",
		"\\toprule",
		" &  &  & $s$ & $n$ \\\\",
		"domain & dataset & network &  &  \\\\",
		"\\midrule",
		"social & advogato &  & 0.13 & 5042 \\\\",
		" & physician\\_trust & 1 & 0.27 & 106 \\\\",
		" &  & 2 & 0.26 & 104 \\\\",
		"\\midrule",
		" &  & \\textbf{Average} & \\textbf{0.22} & \\textbf{1750.67} \\\\",
		"\\bottomrule",
		"\\end{tabular}",
		"\\begin{tablenotes}",
		"\t\\footnotesize",
		"\t\\item $s$ - global similarity (clustering)",
		"\t\\item $n$ - number of nodes in the giant component",
		"\\end{tablenotes}",
		"\\end{threeparttable}",
		"\\end{table}",
	}, "\n")
	assert.Equal(t, want, got)
}

// TestLatexTable_WidthValidation verifies malformed rows are rejected.
func TestLatexTable_WidthValidation(t *testing.T) {
	table := &LatexTable{
		IndexHeaders: []string{"dataset"},
		ValueHeaders: []string{"$s$"},
		Rows:         [][]string{{"karate", "0.26", "extra"}},
	}
	_, err := table.Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")

	table = &LatexTable{
		IndexHeaders: []string{"dataset"},
		ValueHeaders: []string{"$s$"},
		AverageRow:   []string{"Average"},
	}
	_, err = table.Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "average row")
}
