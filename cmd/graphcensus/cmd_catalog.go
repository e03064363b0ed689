// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/graphcensus/pkg/catalog"
	"github.com/AleutianAI/graphcensus/pkg/ux"
	"github.com/AleutianAI/graphcensus/pkg/validation"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runCatalog(cmd *cobra.Command, args []string) error {
	name := args[0]

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	client := s.catalogClient()
	if listNets {
		return listCollection(cmd.Context(), client, name)
	}
	return showDescriptor(cmd.Context(), s, client, name)
}

// listCollection prints every network of a collection.
func listCollection(ctx context.Context, client *catalog.Client, name string) error {
	if err := validation.ValidateSegment(name); err != nil {
		return fmt.Errorf("invalid collection name: %w", err)
	}

	info, err := client.Collection(ctx, name)
	if err != nil {
		return err
	}

	title := info.Title
	if title == "" {
		title = info.Name
	}
	ux.Title(fmt.Sprintf("%s (%d networks)", title, len(info.Nets)))
	for i := range info.Nets {
		n := &info.Nets[i]
		fmt.Printf("  %-40s %12d vertices %12d edges\n", n.Name, n.NumVertices, n.NumEdges)
	}
	return nil
}

// showDescriptor resolves one dataset and prints its descriptor plus
// its local cache status.
func showDescriptor(ctx context.Context, s *session, client *catalog.Client, name string) error {
	if err := validation.ValidateName(name); err != nil {
		return fmt.Errorf("invalid dataset name: %w", err)
	}

	desc, err := client.Resolve(ctx, name)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "collection   %s\n", desc.Collection)
	fmt.Fprintf(&b, "network      %s\n", desc.Name)
	fmt.Fprintf(&b, "url          %s\n", desc.URL)
	fmt.Fprintf(&b, "format       %s\n", desc.Format)
	if desc.Compression != "" {
		fmt.Fprintf(&b, "compression  %s\n", desc.Compression)
	}
	if desc.Size > 0 {
		fmt.Fprintf(&b, "size         %s\n", humanBytes(desc.Size))
	}
	if desc.NumVertices > 0 {
		fmt.Fprintf(&b, "vertices     %d\n", desc.NumVertices)
	}
	if desc.NumEdges > 0 {
		fmt.Fprintf(&b, "edges        %d\n", desc.NumEdges)
	}
	fmt.Fprintf(&b, "cached       %s", cacheStatus(s, desc))

	ux.Box(desc.QualifiedName(), b.String())
	return nil
}

// cacheStatus reports whether the dataset's edge list is on disk.
func cacheStatus(s *session, desc *catalog.Descriptor) string {
	fetcher, err := s.fetcher()
	if err != nil {
		return "unknown"
	}
	if _, err := os.Stat(fetcher.CachePath(desc)); err != nil {
		return "no"
	}
	return "yes"
}
