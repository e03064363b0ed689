// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	cfgPath  string
	quiet    bool
	jsonLogs bool
	traceOn  bool

	trackName  string
	limitCount int
	forceFetch bool
	listNets   bool
	cleanCache bool
	cleanAll   bool
	bucketName string

	rootCmd = &cobra.Command{
		Use:   "graphcensus",
		Short: "Rebuild the path census result tables from public network catalogs",
		Long: `graphcensus downloads the network datasets behind the published
census tables, runs the external statistics engine over each graph,
and writes the derived CSV and LaTeX tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// --- Environment ---
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the config, cache, and output directories and probe the census engine",
		Args:  cobra.NoArgs,
		RunE:  runInit, // Defined in cmd_init.go
	}

	// --- Datasets ---
	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Download the datasets for one or all fetchable tracks",
		Args:  cobra.NoArgs,
		RunE:  runFetch, // Defined in cmd_fetch.go
	}
	catalogCmd = &cobra.Command{
		Use:   "catalog [name]",
		Short: "Resolve a dataset in the remote catalog, or list a collection with --list",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalog, // Defined in cmd_catalog.go
	}

	// --- Tables ---
	prepareCmd = &cobra.Command{
		Use:   "prepare",
		Short: "Run the census over one or all tracks and write the result tables",
		Args:  cobra.NoArgs,
		RunE:  runPrepare, // Defined in cmd_prepare.go
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Fetch then prepare the selected tracks in one go",
		Args:  cobra.NoArgs,
		RunE:  runRun, // Defined in cmd_run.go
	}
	publishCmd = &cobra.Command{
		Use:   "publish",
		Short: "Upload the derived tables to a GCS bucket",
		Args:  cobra.NoArgs,
		RunE:  runPublish, // Defined in cmd_publish.go
	}

	// --- Maintenance ---
	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove the derived tables (default), the dataset cache (--cache), or both (--all)",
		Args:  cobra.NoArgs,
		RunE:  runClean, // Defined in cmd_clean.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Config file path (default ~/.graphcensus/graphcensus.yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false,
		"Silence log output on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false,
		"Write stderr logs as JSON objects")
	rootCmd.PersistentFlags().BoolVar(&traceOn, "trace", false,
		"Export OpenTelemetry traces for this run")

	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&trackName, "track", "", "Restrict to one track")
	fetchCmd.Flags().IntVar(&limitCount, "limit", 0, "Cap the number of datasets per track (0 = all)")
	fetchCmd.Flags().BoolVar(&forceFetch, "force", false, "Re-download datasets that are already cached")

	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&listNets, "list", false, "Treat the argument as a collection and list its networks")

	rootCmd.AddCommand(prepareCmd)
	prepareCmd.Flags().StringVar(&trackName, "track", "", "Restrict to one track")
	prepareCmd.Flags().IntVar(&limitCount, "limit", 0, "Cap the number of datasets per track (0 = all)")
	prepareCmd.Flags().BoolVar(&forceFetch, "force", false, "Re-download datasets that are already cached")

	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&trackName, "track", "", "Restrict to one track")
	runCmd.Flags().IntVar(&limitCount, "limit", 0, "Cap the number of datasets per track (0 = all)")
	runCmd.Flags().BoolVar(&forceFetch, "force", false, "Re-download datasets that are already cached")

	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&bucketName, "bucket", "", "GCS bucket (overrides publish.bucket)")

	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVar(&cleanCache, "cache", false, "Remove the dataset cache instead of the tables")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Remove both the tables and the cache")
}
