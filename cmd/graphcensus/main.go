// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// graphcensus rebuilds the path census result tables from public
// network catalogs: it downloads the datasets, runs the external
// statistics engine over each graph, and writes the derived CSV and
// LaTeX tables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AleutianAI/graphcensus/pkg/ux"
)

func main() {
	// Ctrl-C cancels the run context; in-flight downloads and tables
	// unwind through their atomic write paths, so the cache and the
	// output directory stay consistent.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}
}
