// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package fetch downloads resolved datasets into the local cache.
//
// The cache layout is one file per dataset:
//
//	<cache_root>/<collection>/<name>.csv
//
// A fetch streams the compressed payload to a hidden temp file in the
// destination directory, verifies it against the catalog's advertised
// size and digest, decompresses it to a second temp file, flushes that
// to stable storage, and only then renames it into place. The rename
// is the commit point: a file at the cache path is always complete,
// and an interrupted fetch leaves at worst a temp file that the next
// run overwrites. Fetching a dataset that is already cached performs
// no network traffic at all unless Force is set.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/AleutianAI/graphcensus/internal/manifest"
	"github.com/AleutianAI/graphcensus/pkg/catalog"
	"github.com/AleutianAI/graphcensus/pkg/logging"
)

// defaultMaxSizeBytes caps both the compressed and decompressed
// payload. The largest catalog dataset in use is under 100 MB, so
// anything near this limit is a misbehaving server or a bomb.
const defaultMaxSizeBytes = 4 << 30

// tmpPattern names in-flight temp files. The leading dot keeps them
// out of cache directory listings.
const tmpPattern = ".fetch-*"

// Config holds the fetcher configuration.
type Config struct {
	// CacheRoot is the cache directory. Required.
	CacheRoot string

	// HTTPClient performs downloads. Defaults to a plain http.Client;
	// cancellation comes from the request context.
	HTTPClient catalog.HTTPClient

	// MaxSizeBytes caps payload size in both compressed and
	// decompressed form. Zero means the default; negative disables
	// the cap.
	MaxSizeBytes int64

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// Manifest, when set, records completed fetches. Manifest
	// failures are logged and never fail a fetch.
	Manifest *manifest.Store

	// Logger receives fetch progress. Defaults to the process logger.
	Logger *logging.Logger
}

// Options modify a single Fetch call.
type Options struct {
	// Force re-downloads even when the dataset is already cached.
	Force bool
}

// Result reports where a dataset landed and how it got there.
type Result struct {
	// Path is the cache file holding the decompressed edge list.
	Path string

	// FromCache is true when no download happened.
	FromCache bool

	// Bytes is the decompressed edge list size.
	Bytes int64
}

// Fetcher downloads datasets into the cache. Safe for concurrent use;
// concurrent fetches of the same dataset are collapsed into one
// download.
type Fetcher struct {
	cacheRoot string
	http      catalog.HTTPClient
	maxSize   int64
	userAgent string
	manifest  *manifest.Store
	logger    *logging.Logger
	group     singleflight.Group
}

// New creates a Fetcher from cfg.
func New(cfg Config) (*Fetcher, error) {
	if cfg.CacheRoot == "" {
		return nil, errors.New("cache root is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.MaxSizeBytes == 0 {
		cfg.MaxSizeBytes = defaultMaxSizeBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "graphcensus/1.0 (+https://github.com/AleutianAI/graphcensus)"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Fetcher{
		cacheRoot: cfg.CacheRoot,
		http:      cfg.HTTPClient,
		maxSize:   cfg.MaxSizeBytes,
		userAgent: cfg.UserAgent,
		manifest:  cfg.Manifest,
		logger:    cfg.Logger,
	}, nil
}

// CacheRoot returns the cache directory.
func (f *Fetcher) CacheRoot() string {
	return f.cacheRoot
}

// CachePath returns where a descriptor's edge list lives in the cache,
// whether or not it has been fetched yet.
func (f *Fetcher) CachePath(desc *catalog.Descriptor) string {
	format := desc.Format
	if format == "" {
		format = "csv"
	}
	return filepath.Join(f.cacheRoot, desc.Collection, desc.Name+"."+format)
}

// Fetch ensures the descriptor's edge list is present in the cache and
// returns its location. A cached dataset short-circuits without any
// network traffic unless opts.Force is set.
func (f *Fetcher) Fetch(ctx context.Context, desc *catalog.Descriptor, opts Options) (*Result, error) {
	if desc == nil || desc.URL == "" {
		return nil, errors.New("descriptor with download URL required")
	}
	dest := f.CachePath(desc)

	if !opts.Force {
		if res := statCached(dest); res != nil {
			f.logger.Debug("cache hit", "dataset", desc.QualifiedName(), "path", dest)
			return res, nil
		}
	}

	v, err, _ := f.group.Do(dest, func() (interface{}, error) {
		return f.download(ctx, desc, dest, opts.Force)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// Remove deletes a dataset's cache file and manifest entry. Removing
// an uncached dataset is not an error.
func (f *Fetcher) Remove(collection, name string) error {
	path := filepath.Join(f.cacheRoot, collection, name+".csv")
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cached dataset %s/%s: %w", collection, name, err)
	}
	if f.manifest != nil {
		if err := f.manifest.Delete(collection, name); err != nil {
			return err
		}
	}
	return nil
}

// statCached returns a cache-hit Result when dest is a regular file.
func statCached(dest string) *Result {
	info, err := os.Stat(dest)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	return &Result{Path: dest, FromCache: true, Bytes: info.Size()}
}

// download runs inside the singleflight group: exactly one goroutine
// per cache path executes it.
func (f *Fetcher) download(ctx context.Context, desc *catalog.Descriptor, dest string, force bool) (*Result, error) {
	// A concurrent fetch may have landed the file while this call
	// waited its turn.
	if !force {
		if res := statCached(dest); res != nil {
			return res, nil
		}
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
	}

	started := time.Now()
	f.logger.Info("downloading dataset",
		"dataset", desc.QualifiedName(),
		"url", desc.URL,
		"compression", desc.Compression)

	payload, downloaded, err := f.downloadPayload(ctx, desc, dir)
	if err != nil {
		return nil, err
	}
	defer os.Remove(payload)

	final := payload
	finalSize := downloaded
	if desc.Compression != "" {
		final, finalSize, err = f.decompressPayload(desc, payload, dir)
		if err != nil {
			return nil, err
		}
	}

	if err := os.Rename(final, dest); err != nil {
		os.Remove(final)
		return nil, fmt.Errorf("promote %s into cache: %w", desc.QualifiedName(), err)
	}

	f.logger.Info("dataset fetched",
		"dataset", desc.QualifiedName(),
		"path", dest,
		"downloaded_bytes", downloaded,
		"payload_bytes", finalSize,
		"duration", time.Since(started).Round(time.Millisecond).String())
	f.recordFetch(desc, finalSize)
	return &Result{Path: dest, Bytes: finalSize}, nil
}

// downloadPayload streams the compressed payload to a temp file in
// dir, verifying size and digest as the bytes arrive. On success the
// temp file is synced, closed, and its path returned.
func (f *Fetcher) downloadPayload(ctx context.Context, desc *catalog.Descriptor, dir string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, desc.URL, nil)
	if err != nil {
		return "", 0, &DownloadError{URL: desc.URL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return "", 0, &DownloadError{URL: desc.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, &DownloadError{URL: desc.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	tmp, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return "", 0, fmt.Errorf("create download temp file: %w", err)
	}

	hasher := sha256.New()
	written, err := copyCapped(tmp, io.TeeReader(resp.Body, hasher), f.maxSize)
	if err == nil {
		err = verifyPayload(desc, written, resp.ContentLength, hasher.Sum(nil))
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close download temp file: %w", cerr)
	}
	if err != nil {
		os.Remove(tmp.Name())
		var de *DownloadError
		if errors.As(err, &de) {
			return "", 0, err
		}
		return "", 0, &DownloadError{URL: desc.URL, Err: err}
	}
	return tmp.Name(), written, nil
}

// verifyPayload checks the downloaded byte count and digest against
// whatever the catalog advertised. Unadvertised fields are skipped.
func verifyPayload(desc *catalog.Descriptor, written, contentLength int64, sum []byte) error {
	if written == 0 {
		return errors.New("empty payload")
	}
	if contentLength > 0 && written != contentLength {
		return fmt.Errorf("truncated payload: got %d bytes, Content-Length was %d", written, contentLength)
	}
	if desc.Size > 0 && written != desc.Size {
		return fmt.Errorf("size mismatch: got %d bytes, catalog advertised %d", written, desc.Size)
	}
	if desc.SHA256 != "" {
		got := hex.EncodeToString(sum)
		if !strings.EqualFold(got, desc.SHA256) {
			return fmt.Errorf("sha256 mismatch: got %s, catalog advertised %s", got, desc.SHA256)
		}
	}
	return nil
}

// decompressPayload unpacks the downloaded archive into a second temp
// file in dir and returns its path and size.
func (f *Fetcher) decompressPayload(desc *catalog.Descriptor, archivePath, dir string) (string, int64, error) {
	var src io.ReadCloser
	var err error
	if desc.Compression == "zip" {
		src, err = openZipPayload(archivePath)
	} else {
		src, err = openStreamPayload(archivePath, desc.Compression)
	}
	if err != nil {
		return "", 0, &DecompressionError{URL: desc.URL, Err: err}
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return "", 0, fmt.Errorf("create payload temp file: %w", err)
	}

	written, err := copyCapped(tmp, src, f.maxSize)
	if err == nil && written == 0 {
		err = errors.New("payload decompressed to nothing")
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close payload temp file: %w", cerr)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", 0, &DecompressionError{URL: desc.URL, Err: err}
	}
	return tmp.Name(), written, nil
}

// openStreamPayload opens archivePath through a streaming codec,
// closing the file together with the codec reader.
func openStreamPayload(archivePath, compression string) (io.ReadCloser, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open downloaded payload: %w", err)
	}
	rc, err := newStreamDecompressor(file, compression)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &fileStreamReader{ReadCloser: rc, file: file}, nil
}

type fileStreamReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileStreamReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// copyCapped copies src to dst, failing once more than limit bytes
// have been transferred. A non-positive limit copies without a cap.
func copyCapped(dst io.Writer, src io.Reader, limit int64) (int64, error) {
	if limit <= 0 {
		return io.Copy(dst, src)
	}
	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		return n, err
	}
	if n > limit {
		return n, fmt.Errorf("payload exceeds %d byte limit", limit)
	}
	return n, nil
}

// recordFetch writes the manifest entry for a completed fetch.
func (f *Fetcher) recordFetch(desc *catalog.Descriptor, size int64) {
	if f.manifest == nil {
		return
	}
	err := f.manifest.Put(manifest.Entry{
		Collection:  desc.Collection,
		Name:        desc.Name,
		SourceURL:   desc.URL,
		Compression: desc.Compression,
		Size:        size,
		SHA256:      desc.SHA256,
		FetchedAt:   time.Now().UTC(),
	})
	if err != nil {
		f.logger.Warn("failed to record fetch in manifest",
			"dataset", desc.QualifiedName(),
			"error", err.Error())
	}
}
