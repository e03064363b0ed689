// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package artifact publishes derived tables to a GCS bucket so runs
// on different machines can share results.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/AleutianAI/graphcensus/pkg/logging"
)

// Config describes the publish destination.
type Config struct {
	// Bucket is the GCS bucket name. Required.
	Bucket string

	// Prefix is prepended to every object path.
	Prefix string

	// CredentialsFile points at a service account key. When empty the
	// client falls back to application default credentials.
	CredentialsFile string

	Logger *logging.Logger
}

// Publisher uploads files to one bucket.
type Publisher struct {
	client *storage.Client
	bucket string
	prefix string
	logger *logging.Logger
}

// New creates a Publisher from cfg.
func New(ctx context.Context, cfg Config) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New(logging.Config{Quiet: true})
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return nil, fmt.Errorf("service account key not accessible at %s: %w", cfg.CredentialsFile, err)
		}
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

// Close releases the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// objectPath joins the configured prefix with a slash-separated
// relative path.
func (p *Publisher) objectPath(rel string) string {
	rel = filepath.ToSlash(rel)
	if p.prefix == "" {
		return rel
	}
	return path.Join(p.prefix, rel)
}

// PublishFile uploads one local file under the given relative object
// path and returns the gs:// URL.
func (p *Publisher) PublishFile(ctx context.Context, localPath, rel string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open the local file %s: %w", localPath, err)
	}
	defer f.Close()

	object := p.objectPath(rel)
	w := p.client.Bucket(p.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType(localPath)
	w.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to copy %s to GCS object %s: %w", localPath, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer for %s: %w", object, err)
	}

	url := fmt.Sprintf("gs://%s/%s", p.bucket, object)
	p.logger.Info("table published", "file", localPath, "object", url)
	return url, nil
}

// PublishDir uploads every regular file under localDir, keeping the
// directory structure relative to localDir. Dotfiles are skipped so
// in-flight temp files never leak into the bucket. Returns the
// uploaded gs:// URLs.
func (p *Publisher) PublishDir(ctx context.Context, localDir string) ([]string, error) {
	var urls []string
	err := filepath.WalkDir(localDir, func(fpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name()[0] == '.' {
			return nil
		}
		rel, err := filepath.Rel(localDir, fpath)
		if err != nil {
			return err
		}
		url, err := p.PublishFile(ctx, fpath, rel)
		if err != nil {
			return err
		}
		urls = append(urls, url)
		return nil
	})
	if err != nil {
		return urls, fmt.Errorf("failed to publish %s: %w", localDir, err)
	}
	return urls, nil
}

// contentType guesses from the file extension; tables are csv or tex.
func contentType(p string) string {
	switch ext := filepath.Ext(p); ext {
	case ".csv":
		return "text/csv"
	case ".tex":
		return "application/x-tex"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}
