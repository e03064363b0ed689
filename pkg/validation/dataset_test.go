// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"strings"
	"testing"
)

func TestValidateSegment_Valid(t *testing.T) {
	valid := []string{
		"karate",
		"78",
		"ego_social",
		"tree-of-life",
		"v1.1",
		"S1",
		"ugandan_village-friendship-1",
	}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateSegment(name); err != nil {
				t.Errorf("ValidateSegment(%q) = %v, want nil", name, err)
			}
		})
	}
}

func TestValidateSegment_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"..",
		".hidden",
		"-leading",
		"has space",
		"a/b",
		"semi;colon",
		strings.Repeat("x", 129),
	}
	for _, name := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateSegment(name); err == nil {
				t.Errorf("ValidateSegment(%q) = nil, want error", name)
			}
		})
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in             string
		wantCollection string
		wantNet        string
		wantErr        bool
	}{
		{"karate", "karate", "karate", false},
		{"karate/78", "karate", "78", false},
		{"ego_social/facebook_combined", "ego_social", "facebook_combined", false},
		{" karate/78 ", "karate", "78", false},
		{"ecoli_transcription/v1.1", "ecoli_transcription", "v1.1", false},
		{"a/b/c", "", "", true},
		{"", "", "", true},
		{"../etc/passwd", "", "", true},
		{"karate/../78", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			collection, net, err := SplitName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SplitName(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitName(%q) error = %v", tt.in, err)
			}
			if collection != tt.wantCollection || net != tt.wantNet {
				t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)",
					tt.in, collection, net, tt.wantCollection, tt.wantNet)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("karate/78"); err != nil {
		t.Errorf("ValidateName(karate/78) = %v", err)
	}
	if err := ValidateName("bad name"); err == nil {
		t.Error("ValidateName(bad name) = nil, want error")
	}
}
