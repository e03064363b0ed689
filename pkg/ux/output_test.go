// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for terminal output styling

package ux

import (
	"strings"
	"testing"
)

func TestIconRender_Plain(t *testing.T) {
	SetPlain(true)
	defer SetPlain(false)

	tests := []struct {
		icon Icon
		want string
	}{
		{IconSuccess, "OK"},
		{IconWarning, "WARN"},
		{IconError, "FAIL"},
		{IconArrow, "→"},
	}
	for _, tt := range tests {
		if got := tt.icon.Render(); got != tt.want {
			t.Errorf("Icon %q plain render = %q, want %q", string(tt.icon), got, tt.want)
		}
	}
}

func TestSetPlain(t *testing.T) {
	SetPlain(true)
	if !IsPlain() {
		t.Error("Expected plain mode on")
	}
	SetPlain(false)
	if IsPlain() {
		t.Error("Expected plain mode off")
	}
}

func TestProgressBar_Plain(t *testing.T) {
	SetPlain(true)
	defer SetPlain(false)

	if got := ProgressBar(3, 8, 20); got != "3/8" {
		t.Errorf("ProgressBar plain = %q, want 3/8", got)
	}
}

func TestProgressBar_Styled(t *testing.T) {
	SetPlain(false)

	got := ProgressBar(4, 8, 10)
	if !strings.Contains(got, "50%") {
		t.Errorf("Expected percentage in styled bar, got %q", got)
	}
}

func TestRepeatChar(t *testing.T) {
	if got := repeatChar('x', 3); got != "xxx" {
		t.Errorf("repeatChar = %q", got)
	}
	if got := repeatChar('x', 0); got != "" {
		t.Errorf("repeatChar(0) = %q", got)
	}
	if got := repeatChar('x', -2); got != "" {
		t.Errorf("repeatChar(-2) = %q", got)
	}
}
