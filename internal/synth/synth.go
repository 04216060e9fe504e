// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synth maps a style intent, partial or complete, to a Style
// document and serializes it.
package synth

import (
	"github.com/meshintel/styleforge/pkg/types"
)

const (
	styleID    = "custom-style"
	styleTitle = "Custom Style"
)

// ToStyle converts the current intent into a Style. It is total: absent
// intent fields simply produce a narrower document, and an intent without
// a class yields metadata only.
func ToStyle(in types.StyleIntent) types.Style {
	style := types.Style{
		Info: types.StyleInfo{ID: styleID, Title: styleTitle},
	}

	preset, ok := presetFor(in)
	if !ok {
		return style
	}

	var wrap *types.WrapPunctuation
	if in.Class != nil && *in.Class == types.ClassAuthorDate {
		w := types.WrapParentheses
		wrap = &w
	}

	options := optionsFor(in)

	style.Citation = &types.CitationSpec{
		Preset:  preset,
		Wrap:    wrap,
		Options: options,
	}

	if in.HasBibliography != nil && *in.HasBibliography {
		style.Bibliography = &types.BibliographySpec{
			Preset:  preset,
			Options: options,
		}
	}

	return style
}

// presetFor applies the fixed class-to-preset table. Footnote and Endnote
// map to chicago-author-date until dedicated note presets exist.
func presetFor(in types.StyleIntent) (types.TemplatePreset, bool) {
	if in.Class == nil {
		return "", false
	}

	switch *in.Class {
	case types.ClassNumeric:
		return types.PresetVancouver, true
	case types.ClassFootnote, types.ClassEndnote:
		return types.PresetChicagoAuthorDate, true
	case types.ClassAuthorDate:
		if in.BibliographyPreset != nil && *in.BibliographyPreset == "flat" {
			return types.PresetChicagoAuthorDate, true
		}
		return types.PresetAPA, true
	}
	return "", false
}

// optionsFor derives the options block from the author format. Only an
// explicit et-al rule produces options; a bare name form carries no
// document-level configuration yet.
func optionsFor(in types.StyleIntent) *types.OptionsConfig {
	if in.AuthorFormat == nil || in.AuthorFormat.EtAl == nil {
		return nil
	}
	etAl := in.AuthorFormat.EtAl
	return &types.OptionsConfig{
		Contributors: &types.ContributorsConfig{
			Shorten: &types.ShortenListOptions{
				Min:      etAl.Min,
				UseFirst: etAl.UseFirst,
			},
		},
	}
}
