// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads the reference corpus used for live previews. The
// corpus is read once at process start and treated as an immutable
// snapshot afterwards, so concurrent readers need no locking.
package corpus

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/styleforge/pkg/types"
)

// sampleCandidates is the curated allowlist of reference IDs that show
// off style features (long author lists, classic humanities works, legal
// material). Sample prefers these before falling back to corpus order.
var sampleCandidates = []string{
	"vaswani_attention",
	"foucault_discipline",
	"brown_v_board",
}

// DefaultSampleSize is how many references a live preview cites when the
// configuration does not say otherwise.
const DefaultSampleSize = 3

// Corpus is an immutable snapshot of the reference corpus.
type Corpus struct {
	refs map[string]types.Reference
	ids  []string // sorted, for deterministic fallback order
}

// Load reads a YAML file mapping reference IDs to CSL records. Each
// record's ID field is set from its map key.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}

	var refs map[string]types.Reference
	if err := yaml.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("parsing corpus %s: %w", path, err)
	}

	return New(refs), nil
}

// New builds a corpus snapshot from an ID-to-reference map. The map is
// copied; the snapshot never mutates after construction.
func New(refs map[string]types.Reference) *Corpus {
	c := &Corpus{
		refs: make(map[string]types.Reference, len(refs)),
		ids:  make([]string, 0, len(refs)),
	}
	for id, ref := range refs {
		ref.ID = id
		c.refs[id] = ref
		c.ids = append(c.ids, id)
	}
	sort.Strings(c.ids)
	return c
}

// Default returns the built-in corpus used when no corpus file is
// configured. It carries the three curated references.
func Default() *Corpus {
	return New(map[string]types.Reference{
		"vaswani_attention": {
			Type:           "paper-conference",
			Title:          "Attention Is All You Need",
			ContainerTitle: "Advances in Neural Information Processing Systems",
			Author: []types.Name{
				{Family: "Vaswani", Given: "Ashish"},
				{Family: "Shazeer", Given: "Noam"},
				{Family: "Parmar", Given: "Niki"},
				{Family: "Uszkoreit", Given: "Jakob"},
				{Family: "Jones", Given: "Llion"},
				{Family: "Gomez", Given: "Aidan N."},
				{Family: "Kaiser", Given: "Lukasz"},
				{Family: "Polosukhin", Given: "Illia"},
			},
			Issued: &types.CSLDate{DateParts: [][]int{{2017}}},
		},
		"foucault_discipline": {
			Type:      "book",
			Title:     "Discipline and Punish: The Birth of the Prison",
			Publisher: "Vintage Books",
			Author:    []types.Name{{Family: "Foucault", Given: "Michel"}},
			Issued:    &types.CSLDate{DateParts: [][]int{{1975}}},
		},
		"brown_v_board": {
			Type:   "legal_case",
			Title:  "Brown v. Board of Education",
			Volume: "347",
			Page:   "483",
			Author: []types.Name{{Literal: "Supreme Court of the United States"}},
			Issued: &types.CSLDate{DateParts: [][]int{{1954}}},
		},
	})
}

// Len returns the number of references in the corpus.
func (c *Corpus) Len() int { return len(c.refs) }

// Get returns the reference for an ID.
func (c *Corpus) Get(id string) (types.Reference, bool) {
	ref, ok := c.refs[id]
	return ref, ok
}

// All returns the full ID-to-reference map. Callers must treat it as
// read-only.
func (c *Corpus) All() map[string]types.Reference { return c.refs }

// Sample returns up to n references for live-preview citations. Curated
// candidate IDs come first; if none of them exist the first n IDs in
// sorted order are used. An empty corpus yields an empty sample.
func (c *Corpus) Sample(n int) []types.Reference {
	if n <= 0 {
		n = DefaultSampleSize
	}

	var refs []types.Reference
	for _, id := range sampleCandidates {
		if ref, ok := c.refs[id]; ok && len(refs) < n {
			refs = append(refs, ref)
		}
	}
	if len(refs) > 0 {
		return refs
	}

	for _, id := range c.ids {
		if len(refs) >= n {
			break
		}
		refs = append(refs, c.refs[id])
	}
	return refs
}
