// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AcademicField is the broad discipline the user is writing in. It narrows
// which citation classes the wizard offers.
type AcademicField string

const (
	FieldHumanities    AcademicField = "humanities"
	FieldSocialScience AcademicField = "social_science"
	FieldSciences      AcademicField = "sciences"
)

// CitationClass is the general shape of in-text citations.
type CitationClass string

const (
	ClassAuthorDate CitationClass = "author_date"
	ClassFootnote   CitationClass = "footnote"
	ClassEndnote    CitationClass = "endnote"
	ClassNumeric    CitationClass = "numeric"
)

// NameForm selects long (full) or short (abbreviated) contributor names.
type NameForm string

const (
	NameLong  NameForm = "long"
	NameShort NameForm = "short"
)

// EtAlConfig is an author-list truncation rule: once a reference has at
// least Min authors, only the first UseFirst are shown before "et al.".
type EtAlConfig struct {
	Min      uint8 `json:"min" yaml:"min"`
	UseFirst uint8 `json:"use_first" yaml:"use_first"`
}

// NameOptions holds contributor-name formatting choices.
type NameOptions struct {
	// Form selects long or short name rendering.
	Form NameForm `json:"form" yaml:"form"`

	// EtAl is the truncation rule. Nil means never truncate.
	EtAl *EtAlConfig `json:"et_al" yaml:"et_al"`
}

// StyleIntent is the user's accumulated answer set for the citation style
// they are building. Every field is optional; nil means the wizard has not
// asked (or the user has not answered) yet. The decision engine reads an
// intent and picks the next question; the synthesizer maps any intent,
// partial or complete, to a Style.
type StyleIntent struct {
	// BaseArchetype is the named starting template (e.g. "apa").
	// Informational only: it is accepted on merge but never asked for.
	BaseArchetype *string `json:"base_archetype,omitempty" yaml:"base_archetype,omitempty"`

	// Field is the academic field.
	Field *AcademicField `json:"field,omitempty" yaml:"field,omitempty"`

	// Class is the general citation class.
	Class *CitationClass `json:"class,omitempty" yaml:"class,omitempty"`

	// AuthorFormat holds name and et-al options.
	AuthorFormat *NameOptions `json:"author_format,omitempty" yaml:"author_format,omitempty"`

	// HasBibliography reports whether the style includes a bibliography.
	HasBibliography *bool `json:"has_bibliography,omitempty" yaml:"has_bibliography,omitempty"`

	// CitationPreset is the visual preset for in-text citations
	// (e.g. "colon-locator", "comma-sep", "minimal").
	CitationPreset *string `json:"citation_preset,omitempty" yaml:"citation_preset,omitempty"`

	// BibliographyPreset is the visual preset for bibliography entries
	// (e.g. "year-wrapped", "flat").
	BibliographyPreset *string `json:"bibliography_preset,omitempty" yaml:"bibliography_preset,omitempty"`

	// DetailedConfig reports whether the user opted into the granular
	// author-format questions.
	DetailedConfig *bool `json:"detailed_config,omitempty" yaml:"detailed_config,omitempty"`
}
