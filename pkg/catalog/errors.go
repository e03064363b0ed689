// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a collection or network name is absent
// from the catalog. Callers wrap it with the name:
//
//	if errors.Is(err, catalog.ErrNotFound) { ... }
var ErrNotFound = errors.New("not found in catalog")

// UnavailableError indicates the catalog service could not be reached
// or did not answer sensibly (transport error, 5xx, malformed JSON).
// Distinct from ErrNotFound: the caller cannot conclude anything
// about the dataset's existence.
type UnavailableError struct {
	// URL is the request that failed.
	URL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("catalog unavailable: %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *UnavailableError) Unwrap() error {
	return e.Err
}
