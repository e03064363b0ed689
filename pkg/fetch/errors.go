// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fetch

import "fmt"

// DownloadError indicates the payload could not be retrieved intact:
// transport failure, unexpected status, truncation, an oversized
// payload, or an integrity mismatch against the catalog's advertised
// size or digest.
type DownloadError struct {
	// URL is the download location.
	URL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed: %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// DecompressionError indicates the payload arrived but could not be
// unpacked into a usable edge list: corrupt archive, no CSV member,
// or an empty result.
type DecompressionError struct {
	// URL is the download location the payload came from.
	URL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DecompressionError) Error() string {
	return fmt.Sprintf("decompression failed: %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecompressionError) Unwrap() error {
	return e.Err
}
