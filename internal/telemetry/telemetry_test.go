// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for telemetry initialization

package telemetry

import (
	"context"
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceName != "graphcensus" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "graphcensus")
	}
	if cfg.Exporter != "none" {
		t.Errorf("Exporter = %q, want %q", cfg.Exporter, "none")
	}
	if cfg.OTLPEndpoint != "localhost:4317" {
		t.Errorf("OTLPEndpoint = %q, want %q", cfg.OTLPEndpoint, "localhost:4317")
	}
}

func TestInit_NilContext(t *testing.T) {
	cfg := DefaultConfig()

	_, err := Init(nil, cfg) //nolint:staticcheck // nil context is the case under test
	if !errors.Is(err, ErrNilContext) {
		t.Errorf("Init(nil, cfg) error = %v, want %v", err, ErrNilContext)
	}
}

func TestInit_DisabledExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exporter = "none"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown function is nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestInit_StdoutExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exporter = "stdout"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("shutdown() error = %v", err)
		}
	}()

	ctx, span := StartSpan(context.Background(), "telemetry_test", "test span")
	if ctx == nil {
		t.Fatal("StartSpan returned nil context")
	}
	RecordError(span, errors.New("recorded"))
	SetSpanOK(span)
	span.End()
}

func TestInit_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exporter = "carrier-pigeon"

	_, err := Init(context.Background(), cfg)
	if !errors.Is(err, ErrUnknownExporter) {
		t.Errorf("Init() error = %v, want %v", err, ErrUnknownExporter)
	}
}

func TestRecordError_NilSafe(t *testing.T) {
	RecordError(nil, errors.New("ignored"))
	RecordError(nil, nil)
	SetSpanOK(nil)
}
