// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the artifact publisher

package artifact

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/graphcensus/pkg/logging"
)

func testPublisher() *Publisher {
	// No storage client: only error paths that fail before any GCS
	// call are exercised here.
	return &Publisher{
		bucket: "test-bucket",
		prefix: "tables",
		logger: logging.New(logging.Config{Quiet: true}),
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	if err == nil {
		t.Fatal("New without bucket should return error")
	}
	if !strings.Contains(err.Error(), "bucket name is required") {
		t.Errorf("error = %v, want bucket name complaint", err)
	}
}

func TestNew_MissingCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Config{
		Bucket:          "test-bucket",
		CredentialsFile: "/nonexistent/path/to/key.json",
	})
	if err == nil {
		t.Fatal("New with missing SA key should return error")
	}
	if !strings.Contains(err.Error(), "service account key not accessible") {
		t.Errorf("error should mention the key, got: %v", err)
	}
	if !strings.Contains(err.Error(), "/nonexistent/path/to/key.json") {
		t.Errorf("error should contain the path, got: %v", err)
	}
}

func TestNew_InvalidCredentialsFile(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "invalid_key.json")
	if err := os.WriteFile(keyPath, []byte("not valid json"), 0o644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	_, err := New(context.Background(), Config{
		Bucket:          "test-bucket",
		CredentialsFile: keyPath,
	})
	if err == nil {
		t.Fatal("New with invalid credentials file should return error")
	}
	if !strings.Contains(err.Error(), "failed to create GCS storage client") {
		t.Errorf("error = %v, want client creation failure", err)
	}
}

func TestPublishFile_NonExistentLocalFile(t *testing.T) {
	p := testPublisher()

	_, err := p.PublishFile(context.Background(), "/nonexistent/table.csv", "domains/domains.csv")
	if err == nil {
		t.Fatal("PublishFile with missing local file should return error")
	}
	if !strings.Contains(err.Error(), "failed to open the local file") {
		t.Errorf("error = %v, want local open failure", err)
	}
}

func TestPublishDir_NonExistentDirectory(t *testing.T) {
	p := testPublisher()

	_, err := p.PublishDir(context.Background(), "/nonexistent/output")
	if err == nil {
		t.Fatal("PublishDir with missing directory should return error")
	}
}

func TestObjectPath(t *testing.T) {
	p := testPublisher()
	if got := p.objectPath(filepath.Join("domains", "domains.csv")); got != "tables/domains/domains.csv" {
		t.Errorf("objectPath = %q, want %q", got, "tables/domains/domains.csv")
	}

	p.prefix = ""
	if got := p.objectPath("times.csv"); got != "times.csv" {
		t.Errorf("objectPath = %q, want %q", got, "times.csv")
	}
}

func TestContentType(t *testing.T) {
	cases := map[string]string{
		"descriptive-statistics.csv": "text/csv",
		"descriptive-statistics.tex": "application/x-tex",
		"notes.bin":                  "application/octet-stream",
	}
	for p, want := range cases {
		if got := contentType(p); got != want {
			t.Errorf("contentType(%q) = %q, want %q", p, got, want)
		}
	}
}

// Integration test; requires real GCS credentials.
func TestPublishDir_Integration(t *testing.T) {
	bucket := os.Getenv("GCS_TEST_BUCKET_NAME")
	keyPath := os.Getenv("GCS_TEST_SA_KEY_PATH")
	if bucket == "" || keyPath == "" {
		t.Skip("Skipping integration test: GCS_TEST_BUCKET_NAME and GCS_TEST_SA_KEY_PATH not set")
	}

	ctx := context.Background()
	p, err := New(ctx, Config{Bucket: bucket, Prefix: "graphcensus-test", CredentialsFile: keyPath})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer p.Close()

	dir := t.TempDir()
	sub := filepath.Join(dir, "domains")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "domains.csv"), []byte("dataset\nkarate/78\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := p.PublishDir(ctx, dir)
	if err != nil {
		t.Fatalf("PublishDir failed: %v", err)
	}
	if len(urls) != 1 {
		t.Fatalf("uploaded %d objects, want 1", len(urls))
	}
	want := "gs://" + bucket + "/graphcensus-test/domains/domains.csv"
	if urls[0] != want {
		t.Errorf("url = %q, want %q", urls[0], want)
	}
}
