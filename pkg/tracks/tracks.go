// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tracks defines the analysis tracks: which datasets each one
// consumes, how its rows are labelled, and what kind of processing it
// needs. The track registry is the single place where the curated
// dataset lists live; drivers iterate it instead of hard-coding names.
package tracks

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies how a track sources its graphs.
type Kind int

const (
	// KindStatic tracks carry a curated entry list.
	KindStatic Kind = iota

	// KindDynamic tracks enumerate one catalog collection at run
	// time and derive an entry per network.
	KindDynamic

	// KindAggregate tracks recompute statistics over the cached
	// datasets of other tracks.
	KindAggregate

	// KindSynthetic tracks generate their own graphs and never touch
	// the catalog.
	KindSynthetic
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	case KindAggregate:
		return "aggregate"
	case KindSynthetic:
		return "synthetic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is one dataset row of a track.
type Entry struct {
	// Collection and Net identify the dataset in the catalog and the
	// cache.
	Collection string
	Net        string

	// Alias distinguishes rows derived from the same cached dataset,
	// like the per-city components of physician_trust. Empty for
	// ordinary entries.
	Alias string

	// Domain is the broad category ("social", "biological").
	Domain string

	// Relation is the tie semantics ("friendship", "trust",
	// "interactome", ...).
	Relation string

	// Desc qualifies the relation ("offline", "online", "human",
	// "yeast", ...).
	Desc string

	// Label is the display name used in tables and reports.
	Label string

	// Index orders dynamic entries that carry a numeric suffix.
	Index int

	// Component selects the k-th largest connected component
	// (1-based) instead of the giant component. Zero means giant.
	Component int

	// Group names the source track for aggregate entries.
	Group string
}

// Name returns the catalog-qualified dataset name.
func (e Entry) Name() string {
	return e.Collection + "/" + e.Net
}

// RowKey returns the identity used for table rows and failure
// reports: the alias when one is set, the qualified name otherwise.
func (e Entry) RowKey() string {
	if e.Alias != "" {
		return e.Name() + "#" + e.Alias
	}
	return e.Name()
}

// Network returns the network column value for table rows: the alias
// when set, the net name otherwise, and blank for single-network
// collections where the net just repeats the collection.
func (e Entry) Network() string {
	if e.Alias != "" {
		return e.Alias
	}
	if e.Net == e.Collection {
		return ""
	}
	return e.Net
}

// Track is one named analysis pipeline.
type Track struct {
	// Name is the track identifier used on the command line.
	Name string

	// Kind classifies the track's sourcing model.
	Kind Kind

	// Table is the base name of the track's output table.
	Table string

	// Collection is the catalog collection dynamic tracks enumerate.
	Collection string

	// EntryFor derives a dynamic track's entry from a network name.
	EntryFor func(net string) Entry

	// Sources lists the track names an aggregate track reads from.
	Sources []string

	entries []Entry
}

// Entries returns the track's static entry list. Dynamic tracks
// return nil; their entries come from ResolveEntries.
func (t *Track) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Fetchable reports whether the track downloads datasets.
func (t *Track) Fetchable() bool {
	return t.Kind == KindStatic || t.Kind == KindDynamic
}

// DynamicEntries derives and orders the entries for a dynamic track
// from a collection's network names.
func (t *Track) DynamicEntries(nets []string) []Entry {
	if t.EntryFor == nil {
		return nil
	}
	entries := make([]Entry, 0, len(nets))
	for _, net := range nets {
		entries = append(entries, t.EntryFor(net))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Relation != entries[j].Relation {
			return entries[i].Relation < entries[j].Relation
		}
		if entries[i].Index != entries[j].Index {
			return entries[i].Index < entries[j].Index
		}
		return entries[i].Net < entries[j].Net
	})
	return entries
}

// =============================================================================
// Registry
// =============================================================================

// trackOrder fixes the canonical listing order.
var trackOrder = []string{"domains", "social", "proteins", "descriptive", "performance"}

var registry = map[string]*Track{
	"domains": {
		Name:    "domains",
		Kind:    KindStatic,
		Table:   "domains",
		entries: domainEntries,
	},
	"social": {
		Name:       "social",
		Kind:       KindDynamic,
		Table:      "social",
		Collection: "ugandan_village",
		EntryFor:   socialEntry,
	},
	"proteins": {
		Name:       "proteins",
		Kind:       KindDynamic,
		Table:      "proteins",
		Collection: "tree-of-life",
		EntryFor:   proteinEntry,
	},
	"descriptive": {
		Name:    "descriptive",
		Kind:    KindAggregate,
		Table:   "descriptive-statistics",
		Sources: []string{"domains", "social"},
	},
	"performance": {
		Name:  "performance",
		Kind:  KindSynthetic,
		Table: "times",
	},
}

// ForName returns the named track.
func ForName(name string) (*Track, error) {
	track, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown track %q (known tracks: %s)",
			name, strings.Join(trackOrder, ", "))
	}
	return track, nil
}

// Names returns all track names in canonical order.
func Names() []string {
	out := make([]string, len(trackOrder))
	copy(out, trackOrder)
	return out
}

// Fetchable returns the tracks that download datasets, in canonical
// order.
func Fetchable() []*Track {
	var out []*Track
	for _, name := range trackOrder {
		if t := registry[name]; t.Fetchable() {
			out = append(out, t)
		}
	}
	return out
}
