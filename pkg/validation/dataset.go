// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-supplied names.
//
// Dataset names end up in catalog URLs and cache file paths, so they
// are validated before any I/O to prevent path traversal and URL
// injection.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentPattern matches one name segment (a collection or a network
// name) as published by the catalog service.
// Allows: letters, digits, then dots (v1.1), underscores
// (ego_social), hyphens (tree-of-life). Max length: 128 characters.
// The leading character must be alphanumeric, which also rules out
// "." and ".." segments.
var segmentPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._\-]{0,127}$`)

// ValidateSegment validates a single collection or network name.
//
// Example:
//
//	if err := validation.ValidateSegment(collection); err != nil {
//	    return nil, fmt.Errorf("invalid collection: %w", err)
//	}
//	// Safe to use in a URL path or cache path
func ValidateSegment(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if !segmentPattern.MatchString(name) {
		return fmt.Errorf("invalid name format: %q (must be 1-128 alphanumeric chars, dots, underscores, or hyphens)", name)
	}

	return nil
}

// ValidateName validates a dataset name, either bare ("karate") or
// qualified ("ego_social/facebook_combined").
func ValidateName(name string) error {
	_, _, err := SplitName(name)
	return err
}

// SplitName normalizes and validates a dataset name, returning the
// collection and network segments. A bare name denotes the sole
// network of a single-network collection and maps to (name, name).
//
//	collection, net, err := validation.SplitName(userInput)
func SplitName(name string) (collection, net string, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("name cannot be empty")
	}

	parts := strings.Split(name, "/")
	switch len(parts) {
	case 1:
		collection, net = parts[0], parts[0]
	case 2:
		collection, net = parts[0], parts[1]
	default:
		return "", "", fmt.Errorf("invalid dataset name %q: want collection or collection/network", name)
	}

	if err := ValidateSegment(collection); err != nil {
		return "", "", err
	}
	if err := ValidateSegment(net); err != nil {
		return "", "", err
	}
	return collection, net, nil
}
