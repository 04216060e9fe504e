// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent holds the style-intent merge logic and the decision
// engine that picks the next wizard question.
package intent

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/meshintel/styleforge/pkg/types"
)

// ValidationError reports a malformed intent patch: an unknown field, a
// value of the wrong shape, or an out-of-range enum value. The target
// intent is left untouched when Merge fails.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid intent patch: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid intent patch: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FieldPatch is one answer's effect on a StyleIntent. Each variant sets
// exactly the fields its question concerns, so preview construction is
// checked at compile time instead of validated at runtime.
type FieldPatch interface {
	apply(*types.StyleIntent)
	doc() patchDoc
}

// SetBaseArchetype records the named starting template.
type SetBaseArchetype struct{ Name string }

// SetField records the academic field.
type SetField struct{ Field types.AcademicField }

// SetClass records the citation class.
type SetClass struct{ Class types.CitationClass }

// SetCitationPreset records the in-text citation preset.
type SetCitationPreset struct{ Preset string }

// SetBibliographyPreset records the bibliography layout. Choosing a layout
// implies the style has a bibliography, so HasBibliography rides along.
type SetBibliographyPreset struct{ Preset string }

// SetHasBibliography records whether the style includes a bibliography.
type SetHasBibliography struct{ Value bool }

// SetDetailedConfig records whether the user wants granular author-format
// questions.
type SetDetailedConfig struct{ Value bool }

// SetAuthorFormat records name and et-al formatting options.
type SetAuthorFormat struct{ Format types.NameOptions }

func (p SetBaseArchetype) apply(in *types.StyleIntent) { in.BaseArchetype = &p.Name }
func (p SetField) apply(in *types.StyleIntent)         { in.Field = &p.Field }
func (p SetClass) apply(in *types.StyleIntent)         { in.Class = &p.Class }
func (p SetCitationPreset) apply(in *types.StyleIntent) {
	in.CitationPreset = &p.Preset
}

func (p SetBibliographyPreset) apply(in *types.StyleIntent) {
	yes := true
	in.BibliographyPreset = &p.Preset
	in.HasBibliography = &yes
}

func (p SetHasBibliography) apply(in *types.StyleIntent) { in.HasBibliography = &p.Value }
func (p SetDetailedConfig) apply(in *types.StyleIntent)  { in.DetailedConfig = &p.Value }
func (p SetAuthorFormat) apply(in *types.StyleIntent) {
	f := p.Format
	in.AuthorFormat = &f
}

func (p SetBaseArchetype) doc() patchDoc { return patchDoc{BaseArchetype: &p.Name} }
func (p SetField) doc() patchDoc         { return patchDoc{Field: &p.Field} }
func (p SetClass) doc() patchDoc         { return patchDoc{Class: &p.Class} }
func (p SetCitationPreset) doc() patchDoc {
	return patchDoc{CitationPreset: &p.Preset}
}

func (p SetBibliographyPreset) doc() patchDoc {
	yes := true
	return patchDoc{BibliographyPreset: &p.Preset, HasBibliography: &yes}
}

func (p SetHasBibliography) doc() patchDoc { return patchDoc{HasBibliography: &p.Value} }
func (p SetDetailedConfig) doc() patchDoc  { return patchDoc{DetailedConfig: &p.Value} }
func (p SetAuthorFormat) doc() patchDoc {
	f := p.Format
	return patchDoc{AuthorFormat: &authorFormatDoc{Form: f.Form, EtAl: f.EtAl}}
}

// Apply merges a typed patch into the intent.
func Apply(in *types.StyleIntent, p FieldPatch) { p.apply(in) }

// EncodePatch serializes a patch to the wire form carried in a Preview's
// choice_value: a partial-intent JSON object.
func EncodePatch(p FieldPatch) json.RawMessage {
	b, err := json.Marshal(p.doc())
	if err != nil {
		// All patch variants marshal cleanly; this indicates a programming error.
		panic(fmt.Sprintf("encoding intent patch: %v", err))
	}
	return b
}

// patchDoc is the wire shape of a partial-intent patch. The author_format
// member keeps an explicit et_al key (possibly null) so "never truncate"
// survives the round trip.
type patchDoc struct {
	BaseArchetype      *string              `json:"base_archetype,omitempty"`
	Field              *types.AcademicField `json:"field,omitempty"`
	Class              *types.CitationClass `json:"class,omitempty"`
	AuthorFormat       *authorFormatDoc     `json:"author_format,omitempty"`
	HasBibliography    *bool                `json:"has_bibliography,omitempty"`
	CitationPreset     *string              `json:"citation_preset,omitempty"`
	BibliographyPreset *string              `json:"bibliography_preset,omitempty"`
	DetailedConfig     *bool                `json:"detailed_config,omitempty"`
}

type authorFormatDoc struct {
	Form types.NameForm    `json:"form"`
	EtAl *types.EtAlConfig `json:"et_al"`
}

// Merge applies a wire-form patch to the intent. Unknown keys and values
// of the wrong shape fail with a ValidationError before anything is
// applied, so a failed merge never leaves the intent partially updated.
func Merge(in *types.StyleIntent, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var doc patchDoc
	if err := dec.Decode(&doc); err != nil {
		return &ValidationError{Reason: "decoding patch document", Err: err}
	}

	if err := doc.validate(); err != nil {
		return err
	}

	doc.applyTo(in)
	return nil
}

// DecodeIntent strictly decodes a full intent document. It shares the
// patch validation rules: a complete intent is just a patch against the
// empty intent.
func DecodeIntent(raw []byte) (types.StyleIntent, error) {
	var in types.StyleIntent
	if err := Merge(&in, raw); err != nil {
		return types.StyleIntent{}, err
	}
	return in, nil
}

func (d patchDoc) validate() error {
	if d.Field != nil {
		switch *d.Field {
		case types.FieldHumanities, types.FieldSocialScience, types.FieldSciences:
		default:
			return &ValidationError{Reason: fmt.Sprintf("unknown field value %q", *d.Field)}
		}
	}
	if d.Class != nil {
		switch *d.Class {
		case types.ClassAuthorDate, types.ClassFootnote, types.ClassEndnote, types.ClassNumeric:
		default:
			return &ValidationError{Reason: fmt.Sprintf("unknown class value %q", *d.Class)}
		}
	}
	if d.AuthorFormat != nil {
		switch d.AuthorFormat.Form {
		case types.NameLong, types.NameShort:
		default:
			return &ValidationError{Reason: fmt.Sprintf("unknown name form %q", d.AuthorFormat.Form)}
		}
	}
	return nil
}

func (d patchDoc) applyTo(in *types.StyleIntent) {
	if d.BaseArchetype != nil {
		in.BaseArchetype = d.BaseArchetype
	}
	if d.Field != nil {
		in.Field = d.Field
	}
	if d.Class != nil {
		in.Class = d.Class
	}
	if d.AuthorFormat != nil {
		in.AuthorFormat = &types.NameOptions{Form: d.AuthorFormat.Form, EtAl: d.AuthorFormat.EtAl}
	}
	if d.HasBibliography != nil {
		in.HasBibliography = d.HasBibliography
	}
	if d.CitationPreset != nil {
		in.CitationPreset = d.CitationPreset
	}
	if d.BibliographyPreset != nil {
		in.BibliographyPreset = d.BibliographyPreset
	}
	if d.DetailedConfig != nil {
		in.DetailedConfig = d.DetailedConfig
	}
}
