// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TemplatePreset names a curated bundle of formatting defaults.
type TemplatePreset string

const (
	PresetAPA               TemplatePreset = "apa"
	PresetVancouver         TemplatePreset = "vancouver"
	PresetChicagoAuthorDate TemplatePreset = "chicago-author-date"
)

// WrapPunctuation is the bracketing placed around an in-text citation.
type WrapPunctuation string

const (
	WrapParentheses WrapPunctuation = "parentheses"
)

// ShortenListOptions is the contributor-list truncation rule carried into
// the style document.
type ShortenListOptions struct {
	Min      uint8 `json:"min" yaml:"min"`
	UseFirst uint8 `json:"use_first" yaml:"use_first"`
}

// ContributorsConfig groups contributor-list options.
type ContributorsConfig struct {
	Shorten *ShortenListOptions `json:"shorten,omitempty" yaml:"shorten,omitempty"`
}

// OptionsConfig is the shared options block for citation and bibliography
// specs.
type OptionsConfig struct {
	Contributors *ContributorsConfig `json:"contributors,omitempty" yaml:"contributors,omitempty"`
}

// CitationSpec describes how in-text citations are rendered.
type CitationSpec struct {
	Preset  TemplatePreset   `json:"preset" yaml:"preset"`
	Wrap    *WrapPunctuation `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Options *OptionsConfig   `json:"options,omitempty" yaml:"options,omitempty"`
}

// BibliographySpec describes how bibliography entries are rendered.
type BibliographySpec struct {
	Preset  TemplatePreset `json:"preset" yaml:"preset"`
	Options *OptionsConfig `json:"options,omitempty" yaml:"options,omitempty"`
}

// StyleInfo carries style metadata.
type StyleInfo struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Style is the finished specification consumed by a rendering engine.
// An intent with no class synthesizes to metadata only: both Citation and
// Bibliography stay nil.
type Style struct {
	Info         StyleInfo         `json:"info" yaml:"info"`
	Citation     *CitationSpec     `json:"citation,omitempty" yaml:"citation,omitempty"`
	Bibliography *BibliographySpec `json:"bibliography,omitempty" yaml:"bibliography,omitempty"`
}
