// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog resolves dataset names against a Netzschleuder
// compatible network repository. A name like "ego_social/facebook_combined"
// (or a bare "karate", shorthand for "karate/karate") is turned into a
// Descriptor carrying the download URL, compression, and whatever
// integrity metadata the catalog advertises.
//
// The client performs exactly one metadata request per resolution and
// never retries; transient failures surface as *UnavailableError and
// the caller decides whether the run can continue.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/AleutianAI/graphcensus/pkg/logging"
	"github.com/AleutianAI/graphcensus/pkg/validation"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultBaseURL is the public Netzschleuder instance.
	DefaultBaseURL = "https://networks.skewed.de"

	// defaultUserAgent identifies the harness to the catalog operator.
	defaultUserAgent = "graphcensus/1.0 (+https://github.com/AleutianAI/graphcensus)"

	// defaultRequestsPerSecond paces metadata requests so batch runs
	// stay polite to the shared public instance.
	defaultRequestsPerSecond = 4
)

// =============================================================================
// Client
// =============================================================================

// HTTPClient interface allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the catalog client configuration.
type Config struct {
	// BaseURL is the catalog root, without a trailing slash.
	// Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient performs the requests. Defaults to an http.Client
	// with a 30 second timeout.
	HTTPClient HTTPClient

	// RequestsPerSecond caps the metadata request rate. Zero means
	// the default; negative disables pacing entirely.
	RequestsPerSecond float64

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// Logger receives debug-level request traces. Defaults to the
	// process logger.
	Logger *logging.Logger
}

// Client is a read-only catalog client. Safe for concurrent use.
type Client struct {
	baseURL   string
	http      HTTPClient
	limiter   *rate.Limiter
	userAgent string
	logger    *logging.Logger
}

// New creates a catalog client from cfg, applying defaults for any
// zero field.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	var limiter *rate.Limiter
	switch {
	case cfg.RequestsPerSecond == 0:
		limiter = rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1)
	case cfg.RequestsPerSecond > 0:
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	default:
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		http:      cfg.HTTPClient,
		limiter:   limiter,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}
}

// =============================================================================
// Operations
// =============================================================================

// Collection fetches and parses the metadata listing for one
// collection. An unknown collection returns an error satisfying
// errors.Is(err, ErrNotFound); transport and server failures return a
// *UnavailableError.
func (c *Client) Collection(ctx context.Context, collection string) (*CollectionInfo, error) {
	if err := validation.ValidateSegment(collection); err != nil {
		return nil, fmt.Errorf("invalid collection name: %w", err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("catalog request cancelled: %w", err)
	}

	url := c.baseURL + "/api/net/" + collection
	c.logger.Debug("fetching collection metadata", "collection", collection, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UnavailableError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("collection %q: %w", collection, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, &UnavailableError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var parsed collectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &UnavailableError{URL: url, Err: fmt.Errorf("malformed collection listing: %w", err)}
	}

	info := &CollectionInfo{
		Name:  collection,
		Title: parsed.Title,
		Nets:  make([]NetInfo, 0, len(parsed.Nets)),
	}
	for _, net := range parsed.Nets {
		analysis := parsed.analysisFor(net)
		file := parsed.fileFor(net)
		fileURL := file.URL
		if fileURL == "" {
			fileURL = c.baseURL + "/net/" + collection + "/files/" + net + ".csv.zip"
		}
		info.Nets = append(info.Nets, NetInfo{
			Name:        net,
			NumVertices: analysis.NumVertices,
			NumEdges:    analysis.NumEdges,
			Size:        file.Size,
			SHA256:      file.SHA256,
			fileURL:     fileURL,
		})
	}

	c.logger.Debug("collection metadata fetched",
		"collection", collection,
		"title", parsed.Title,
		"nets", len(info.Nets))
	return info, nil
}

// Resolve maps a dataset name to a Descriptor. The name is either
// "collection/network" or a bare "collection", which resolves the
// network with the same name as the collection.
//
// A missing collection or network returns an error satisfying
// errors.Is(err, ErrNotFound). A reachable catalog always yields a
// descriptor with a non-empty URL: when the listing carries no file
// record the URL is constructed from the catalog's layout convention.
func (c *Client) Resolve(ctx context.Context, name string) (*Descriptor, error) {
	collection, net, err := validation.SplitName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset name %q: %w", name, err)
	}

	info, err := c.Collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	ni := info.Net(net)
	if ni == nil {
		return nil, fmt.Errorf("network %q in collection %q: %w", net, collection, ErrNotFound)
	}

	desc := &Descriptor{
		Collection:  collection,
		Name:        net,
		URL:         ni.fileURL,
		Format:      "csv",
		Compression: compressionFromURL(ni.fileURL),
		Size:        ni.Size,
		SHA256:      ni.SHA256,
		NumVertices: ni.NumVertices,
		NumEdges:    ni.NumEdges,
	}
	c.logger.Debug("dataset resolved",
		"dataset", desc.QualifiedName(),
		"url", desc.URL,
		"compression", desc.Compression)
	return desc, nil
}
