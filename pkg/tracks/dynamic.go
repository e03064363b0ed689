// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracks

import (
	"fmt"
	"strconv"
	"strings"
)

// socialEntry classifies one Ugandan village network. Friendship
// layers are named with a trailing "-N", health advice layers with a
// trailing "_N"; the numeric suffix becomes the entry index.
func socialEntry(net string) Entry {
	relation := "health advice"
	sep := "_"
	if strings.Contains(net, "friendship") {
		relation = "friendship"
		sep = "-"
	}

	index := 0
	if i := strings.LastIndex(net, sep); i >= 0 {
		if parsed, err := strconv.Atoi(net[i+1:]); err == nil {
			index = parsed
		}
	}

	words := strings.Fields(relation)
	short := words[len(words)-1]
	label := fmt.Sprintf("%s (%d)", strings.ToUpper(short[:1])+short[1:], index)

	return Entry{
		Collection: "ugandan_village",
		Net:        net,
		Domain:     "social",
		Relation:   relation,
		Desc:       "offline",
		Label:      label,
		Index:      index,
	}
}

// proteinEntry wraps one tree-of-life interactome. Networks are named
// by species taxonomy ID.
func proteinEntry(net string) Entry {
	index := 0
	if parsed, err := strconv.Atoi(net); err == nil {
		index = parsed
	}
	return Entry{
		Collection: "tree-of-life",
		Net:        net,
		Domain:     "biological",
		Relation:   "interactome",
		Desc:       "tree of life",
		Label:      net,
		Index:      index,
	}
}
