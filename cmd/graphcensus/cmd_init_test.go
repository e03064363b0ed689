// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the engine version gate

package main

import (
	"strings"
	"testing"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"pathcensus 1.4.2 (cpython 3.12)", "v1.4.2"},
		{"1.4.2", "v1.4.2"},
		{"v2.0", "v2.0"},
		{"2", "v2"},
		{"version 0.10.1", "v0.10.1"},
		{"no digits here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeVersion(tt.raw); got != tt.want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCheckMinVersion(t *testing.T) {
	tests := []struct {
		name     string
		reported string
		minimum  string
		wantErr  string
	}{
		{"newer passes", "pathcensus 2.0.0", "1.5", ""},
		{"equal passes", "1.5.0", "1.5.0", ""},
		{"minor counts", "1.5", "1.5.0", ""},
		{"older fails", "pathcensus 1.4.2", "1.5", "below the required minimum"},
		{"unparseable engine", "mystery build", "1.0", "cannot parse a version"},
		{"unparseable minimum", "1.0.0", "latest", "cannot parse census.min_version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMinVersion(tt.reported, tt.minimum)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("checkMinVersion(%q, %q) failed: %v", tt.reported, tt.minimum, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("checkMinVersion(%q, %q) should fail", tt.reported, tt.minimum)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
