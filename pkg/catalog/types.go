// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import "strings"

// =============================================================================
// Public Types
// =============================================================================

// Descriptor is everything the downloader needs to fetch one network:
// where the edge list lives, how it is compressed, and what to verify
// after the bytes arrive. Descriptors are value objects; resolving the
// same name twice yields equal descriptors as long as the catalog has
// not changed.
type Descriptor struct {
	// Collection is the catalog collection the network belongs to.
	Collection string

	// Name is the network name within the collection. For
	// single-network collections it equals Collection.
	Name string

	// URL is the download location of the compressed edge list.
	// Always non-empty on a successfully resolved descriptor.
	URL string

	// Format is the payload format after decompression.
	// Currently always "csv".
	Format string

	// Compression is the transport compression: "zst", "gz", "zip",
	// or "" for an uncompressed payload.
	Compression string

	// Size is the compressed payload size in bytes, or 0 when the
	// catalog did not report one.
	Size int64

	// SHA256 is the lowercase hex digest of the compressed payload,
	// or "" when the catalog did not report one.
	SHA256 string

	// NumVertices and NumEdges are the catalog's advertised graph
	// dimensions, or 0 when not reported. Advisory only; the
	// pipeline recomputes both after preprocessing.
	NumVertices int
	NumEdges    int
}

// QualifiedName returns the canonical "collection/name" form.
func (d *Descriptor) QualifiedName() string {
	return d.Collection + "/" + d.Name
}

// NetInfo describes one network inside a collection listing.
type NetInfo struct {
	Name        string
	NumVertices int
	NumEdges    int
	Size        int64
	SHA256      string

	// fileURL is the resolved download URL for this network's edge
	// list, populated when the collection listing is built.
	fileURL string
}

// CollectionInfo is a parsed collection listing.
type CollectionInfo struct {
	Name  string
	Title string
	Nets  []NetInfo
}

// Net returns the named network's info, or nil when the collection
// does not carry it.
func (c *CollectionInfo) Net(name string) *NetInfo {
	for i := range c.Nets {
		if c.Nets[i].Name == name {
			return &c.Nets[i]
		}
	}
	return nil
}

// =============================================================================
// Wire Format
// =============================================================================

// collectionResponse mirrors the catalog's /api/net/{collection} JSON.
// Fields we do not consume (tags, bibliography, upstream URLs) are
// omitted so schema drift there cannot break parsing.
type collectionResponse struct {
	Title    string                 `json:"title"`
	Nets     []string               `json:"nets"`
	Analyses map[string]netAnalysis `json:"analyses"`
	Files    map[string]netFile     `json:"files"`
}

type netAnalysis struct {
	NumVertices int `json:"num_vertices"`
	NumEdges    int `json:"num_edges"`
}

type netFile struct {
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
	URL    string `json:"url"`
}

// analysisFor returns the analysis block for a network, or a zero
// block when the catalog omitted one.
func (r *collectionResponse) analysisFor(net string) netAnalysis {
	return r.Analyses[net]
}

func (r *collectionResponse) fileFor(net string) netFile {
	return r.Files[net]
}

// compressionFromURL infers the transport compression from the
// download URL's suffix.
func compressionFromURL(url string) string {
	switch {
	case strings.HasSuffix(url, ".zst"):
		return "zst"
	case strings.HasSuffix(url, ".gz"):
		return "gz"
	case strings.HasSuffix(url, ".zip"):
		return "zip"
	default:
		return ""
	}
}
