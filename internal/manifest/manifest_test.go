// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the fetch manifest

package manifest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(collection, name string) Entry {
	return Entry{
		Collection:  collection,
		Name:        name,
		SourceURL:   "https://catalog.test/net/" + collection + "/files/" + name + ".csv.zip",
		Compression: "zip",
		Size:        2048,
		SHA256:      "deadbeef",
		FetchedAt:   time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
	}
}

// TestPutGet verifies a round trip through an in-memory store.
func TestPutGet(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	want := testEntry("karate", "78")
	require.NoError(t, store.Put(want))

	got, err := store.Get("karate", "78")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

// TestGet_MissingEntry verifies the sentinel for unrecorded datasets.
func TestGet_MissingEntry(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get("karate", "78")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEntry)
	assert.Contains(t, err.Error(), "karate/78")
}

// TestPut_RequiresIdentity verifies entries without a dataset identity
// are rejected.
func TestPut_RequiresIdentity(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	assert.Error(t, store.Put(Entry{Name: "78"}))
	assert.Error(t, store.Put(Entry{Collection: "karate"}))
}

// TestPut_OverwritesExisting verifies re-fetches replace the old record.
func TestPut_OverwritesExisting(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	first := testEntry("advogato", "advogato")
	require.NoError(t, store.Put(first))

	second := first
	second.Size = 4096
	second.FetchedAt = first.FetchedAt.Add(24 * time.Hour)
	require.NoError(t, store.Put(second))

	got, err := store.Get("advogato", "advogato")
	require.NoError(t, err)
	assert.Equal(t, int64(4096), got.Size)
	assert.Equal(t, second.FetchedAt, got.FetchedAt)
}

// TestDelete verifies removal, including the absent-entry no-op.
func TestDelete(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(testEntry("karate", "78")))
	require.NoError(t, store.Delete("karate", "78"))

	_, err = store.Get("karate", "78")
	assert.ErrorIs(t, err, ErrNoEntry)

	// Deleting again must not fail.
	assert.NoError(t, store.Delete("karate", "78"))
}

// TestList verifies all entries come back in key order.
func TestList(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(testEntry("pgp_strong", "pgp_strong")))
	require.NoError(t, store.Put(testEntry("karate", "78")))
	require.NoError(t, store.Put(testEntry("karate", "77")))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "77", entries[0].Name)
	assert.Equal(t, "78", entries[1].Name)
	assert.Equal(t, "pgp_strong", entries[2].Collection)
}

// TestOpen_RequiresPath verifies persistent mode needs a directory.
func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}

// TestOpen_PersistsAcrossReopen verifies entries survive a close.
func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DirName)

	store, err := Open(Config{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, store.Put(testEntry("reactome", "reactome")))
	require.NoError(t, store.Close())

	reopened, err := Open(Config{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("reactome", "reactome")
	require.NoError(t, err)
	assert.Equal(t, "reactome", got.Collection)
	assert.Equal(t, int64(2048), got.Size)
}
