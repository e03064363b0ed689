// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracks

// domainEntries is the curated cross-domain dataset list. The
// physician trust study covers four separate city networks published
// as one file, so it appears four times with Component selecting the
// k-th largest component.
var domainEntries = []Entry{
	// Friendship (offline)
	{Collection: "karate", Net: "78", Domain: "social", Relation: "friendship", Desc: "offline", Label: "Karate"},
	{Collection: "windsurfers", Net: "windsurfers", Domain: "social", Relation: "friendship", Desc: "offline", Label: "Windsurfers"},
	{Collection: "residence_hall", Net: "residence_hall", Domain: "social", Relation: "friendship", Desc: "offline", Label: "Residence hall"},

	// Friendship (online)
	{Collection: "ego_social", Net: "facebook_combined", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (ego-nets)"},
	{Collection: "facebook_friends", Net: "facebook_friends", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (Maier)"},
	{Collection: "facebook_organizations", Net: "S1", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (S1)"},
	{Collection: "facebook_organizations", Net: "S2", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (S2)"},
	{Collection: "facebook_organizations", Net: "M1", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (M1)"},
	{Collection: "facebook_organizations", Net: "M2", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (M2)"},
	{Collection: "facebook_organizations", Net: "L1", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (L1)"},
	{Collection: "facebook_organizations", Net: "L2", Domain: "social", Relation: "friendship", Desc: "online", Label: "FB (L2)"},

	// Recognition (offline)
	{Collection: "dutch_criticism", Net: "dutch_criticism", Domain: "social", Relation: "recognition", Desc: "offline", Label: "Dutch criticism"},

	// Trust (offline)
	{Collection: "physician_trust", Net: "physician_trust", Alias: "1", Component: 1, Domain: "social", Relation: "trust", Desc: "offline", Label: "Physicians (1)"},
	{Collection: "physician_trust", Net: "physician_trust", Alias: "2", Component: 2, Domain: "social", Relation: "trust", Desc: "offline", Label: "Physicians (2)"},
	{Collection: "physician_trust", Net: "physician_trust", Alias: "3", Component: 3, Domain: "social", Relation: "trust", Desc: "offline", Label: "Physicians (3)"},
	{Collection: "physician_trust", Net: "physician_trust", Alias: "4", Component: 4, Domain: "social", Relation: "trust", Desc: "offline", Label: "Physicians (4)"},

	// Trust (online)
	{Collection: "epinions_trust", Net: "epinions_trust", Domain: "social", Relation: "trust", Desc: "online", Label: "Epinions"},
	{Collection: "advogato", Net: "advogato", Domain: "social", Relation: "trust", Desc: "online", Label: "Advogato"},
	{Collection: "pgp_strong", Net: "pgp_strong", Domain: "social", Relation: "trust", Desc: "online", Label: "PGP"},

	// Interactomes (PDZ)
	{Collection: "interactome_pdz", Net: "interactome_pdz", Domain: "biological", Relation: "interactome", Desc: "PDZ", Label: "PDZ"},

	// Interactomes (human)
	{Collection: "reactome", Net: "reactome", Domain: "biological", Relation: "interactome", Desc: "human", Label: "Reactome"},
	{Collection: "interactome_figeys", Net: "interactome_figeys", Domain: "biological", Relation: "interactome", Desc: "human", Label: "Figeys"},
	{Collection: "interactome_stelzl", Net: "interactome_stelzl", Domain: "biological", Relation: "interactome", Desc: "human", Label: "Stelzl"},
	{Collection: "interactome_vidal", Net: "interactome_vidal", Domain: "biological", Relation: "interactome", Desc: "human", Label: "Vidal"},

	// Interactomes (yeast)
	{Collection: "collins_yeast", Net: "collins_yeast", Domain: "biological", Relation: "interactome", Desc: "yeast", Label: "Collins"},
	{Collection: "interactome_yeast", Net: "interactome_yeast", Domain: "biological", Relation: "interactome", Desc: "yeast", Label: "Coulomb"},

	// Gene transcription
	{Collection: "ecoli_transcription", Net: "v1.1", Domain: "biological", Relation: "genetic", Desc: "E. coli", Label: "E. coli"},
	{Collection: "yeast_transcription", Net: "yeast_transcription", Domain: "biological", Relation: "genetic", Desc: "yeast", Label: "Yeast"},
}
