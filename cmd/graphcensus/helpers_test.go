// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for flag validation and session helpers

package main

import (
	"strings"
	"testing"
)

func TestSelectTracks_All(t *testing.T) {
	selected, err := selectTracks("", false)
	if err != nil {
		t.Fatalf("selectTracks failed: %v", err)
	}
	want := []string{"domains", "social", "proteins", "descriptive", "performance"}
	if len(selected) != len(want) {
		t.Fatalf("got %d tracks, want %d", len(selected), len(want))
	}
	for i, track := range selected {
		if track.Name != want[i] {
			t.Errorf("track[%d] = %q, want %q", i, track.Name, want[i])
		}
	}
}

func TestSelectTracks_FetchableOnly(t *testing.T) {
	selected, err := selectTracks("", true)
	if err != nil {
		t.Fatalf("selectTracks failed: %v", err)
	}
	want := []string{"domains", "social", "proteins"}
	if len(selected) != len(want) {
		t.Fatalf("got %d tracks, want %d", len(selected), len(want))
	}
	for i, track := range selected {
		if track.Name != want[i] {
			t.Errorf("track[%d] = %q, want %q", i, track.Name, want[i])
		}
	}
}

func TestSelectTracks_Named(t *testing.T) {
	selected, err := selectTracks("social", false)
	if err != nil {
		t.Fatalf("selectTracks failed: %v", err)
	}
	if len(selected) != 1 || selected[0].Name != "social" {
		t.Errorf("got %v, want the social track alone", selected)
	}
}

func TestSelectTracks_Unknown(t *testing.T) {
	_, err := selectTracks("domans", false)
	if err == nil {
		t.Fatal("selectTracks accepted an unknown track")
	}
	if !strings.Contains(err.Error(), "domans") {
		t.Errorf("error should name the bad track, got: %v", err)
	}
	if !strings.Contains(err.Error(), "domains") {
		t.Errorf("error should list the known tracks, got: %v", err)
	}
}

func TestSelectTracks_RejectsUnfetchable(t *testing.T) {
	for _, name := range []string{"descriptive", "performance"} {
		if _, err := selectTracks(name, true); err == nil {
			t.Errorf("selectTracks(%q, fetchOnly) should fail", name)
		}
	}
	// The same names are fine when not fetching.
	for _, name := range []string{"descriptive", "performance"} {
		if _, err := selectTracks(name, false); err != nil {
			t.Errorf("selectTracks(%q) failed: %v", name, err)
		}
	}
}

func TestValidateLimit(t *testing.T) {
	if err := validateLimit(0); err != nil {
		t.Errorf("limit 0 should pass: %v", err)
	}
	if err := validateLimit(10); err != nil {
		t.Errorf("limit 10 should pass: %v", err)
	}
	err := validateLimit(-1)
	if err == nil {
		t.Fatal("negative limit should fail")
	}
	if !strings.Contains(err.Error(), "-1") {
		t.Errorf("error should carry the value, got: %v", err)
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{10 << 20, "10.0 MB"},
		{3 << 30, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
