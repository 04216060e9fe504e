// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// Question is the next wizard prompt. ID names the StyleIntent field the
// question concerns.
type Question struct {
	ID          string `json:"id" yaml:"id"`
	Text        string `json:"text" yaml:"text"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Preview is one selectable answer. Label doubles as a literal preview of
// the resulting citation shape (e.g. "(Smith and Jones, 2023: 34)").
// ChoiceValue is the partial-intent patch merged when the answer is picked.
type Preview struct {
	Label       string          `json:"label" yaml:"label"`
	HTML        string          `json:"html" yaml:"html"`
	ChoiceValue json.RawMessage `json:"choice_value" yaml:"choice_value"`
}

// DecisionPackage is everything a client needs to render the next wizard
// step. A nil Question means the tree is exhausted for the chosen class.
type DecisionPackage struct {
	// MissingFields lists every required field still unset, computed by a
	// presence scan independent of question order. It can be non-empty in
	// a terminal state (AuthorDate with detailed_config=false never asks
	// author_format).
	MissingFields []string `json:"missing_fields" yaml:"missing_fields"`

	Question *Question `json:"question,omitempty" yaml:"question,omitempty"`
	Previews []Preview `json:"previews" yaml:"previews"`

	// PreviewHTML is a rendered live-preview fragment attached by the
	// serving layer, never by the engine itself.
	PreviewHTML string `json:"preview_html,omitempty" yaml:"preview_html,omitempty"`

	// Rendered sample text, populated by an external renderer when available.
	InTextPreview       string `json:"in_text_preview,omitempty" yaml:"in_text_preview,omitempty"`
	NotePreview         string `json:"note_preview,omitempty" yaml:"note_preview,omitempty"`
	BibliographyPreview string `json:"bibliography_preview,omitempty" yaml:"bibliography_preview,omitempty"`
}
