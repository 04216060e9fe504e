// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/meshintel/styleforge/pkg/types"
)

// Local is the built-in renderer. It covers the three template presets
// the synthesizer emits well enough for live previews: author-date text
// for apa and chicago-author-date, sequential numbers for vancouver.
type Local struct{}

var _ Renderer = Local{}

// Citation renders one in-text citation citing all refs.
func (Local) Citation(_ context.Context, style types.Style, refs []types.Reference) (string, error) {
	if style.Citation == nil {
		return "", fmt.Errorf("style has no citation spec")
	}
	if len(refs) == 0 {
		return "", nil
	}

	spec := style.Citation
	var items []string

	switch spec.Preset {
	case types.PresetVancouver:
		for i := range refs {
			items = append(items, fmt.Sprintf("%d", i+1))
		}
	case types.PresetChicagoAuthorDate:
		for _, r := range refs {
			items = append(items, fmt.Sprintf("%s %s", citeAuthors(r, spec.Options), yearOf(r)))
		}
	default: // apa
		for _, r := range refs {
			items = append(items, fmt.Sprintf("%s, %s", citeAuthors(r, spec.Options), yearOf(r)))
		}
	}

	text := strings.Join(items, "; ")
	if spec.Wrap != nil && *spec.Wrap == types.WrapParentheses {
		text = "(" + text + ")"
	}
	return text, nil
}

// Bibliography renders one entry per reference.
func (Local) Bibliography(_ context.Context, style types.Style, refs []types.Reference) ([]string, error) {
	if style.Bibliography == nil {
		return nil, fmt.Errorf("style has no bibliography spec")
	}

	entries := make([]string, 0, len(refs))
	for _, r := range refs {
		entries = append(entries, bibliographyEntry(style.Bibliography.Preset, r, style.Bibliography.Options))
	}
	return entries, nil
}

func bibliographyEntry(preset types.TemplatePreset, r types.Reference, opts *types.OptionsConfig) string {
	var b strings.Builder

	switch preset {
	case types.PresetVancouver:
		b.WriteString(bibAuthors(r, opts, nameVancouver))
		b.WriteString(". ")
		b.WriteString(r.Title)
		b.WriteString(". ")
		b.WriteString(yearOf(r))
		b.WriteString(".")
	case types.PresetChicagoAuthorDate:
		b.WriteString(bibAuthors(r, opts, nameChicago))
		b.WriteString(". ")
		b.WriteString(yearOf(r))
		b.WriteString(". ")
		b.WriteString(r.Title)
		b.WriteString(".")
	default: // apa
		b.WriteString(bibAuthors(r, opts, nameAPA))
		b.WriteString(" (")
		b.WriteString(yearOf(r))
		b.WriteString("). ")
		b.WriteString(r.Title)
		b.WriteString(".")
	}

	if r.ContainerTitle != "" {
		b.WriteString(" ")
		b.WriteString(r.ContainerTitle)
		b.WriteString(".")
	}
	return b.String()
}

// citeAuthors returns the author part of an in-text citation, applying
// the style's truncation rule when one is set.
func citeAuthors(r types.Reference, opts *types.OptionsConfig) string {
	names := familyNames(r)
	if len(names) == 0 {
		return "Anonymous"
	}

	if min, useFirst, ok := shortenRule(opts); ok && len(names) >= min {
		// A rule asking for more names than exist truncates nothing.
		if useFirst < len(names) {
			return strings.Join(names[:useFirst], ", ") + " et al."
		}
	}

	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		// Without an explicit rule, three or more authors still read
		// better truncated in running text.
		return names[0] + " et al."
	}
}

func bibAuthors(r types.Reference, opts *types.OptionsConfig, format func(types.Name) string) string {
	if len(r.Author) == 0 {
		return "Anonymous"
	}

	authors := r.Author
	truncated := false
	if min, useFirst, ok := shortenRule(opts); ok && len(authors) >= min && useFirst < len(authors) {
		authors = authors[:useFirst]
		truncated = true
	}

	parts := make([]string, len(authors))
	for i, a := range authors {
		parts[i] = format(a)
	}

	joined := strings.Join(parts, ", ")
	if truncated {
		return joined + ", et al."
	}
	if len(parts) == 2 {
		return parts[0] + ", and " + parts[1]
	}
	return joined
}

// shortenRule extracts the truncation rule. useFirst is clamped to at
// least one shown author.
func shortenRule(opts *types.OptionsConfig) (min, useFirst int, ok bool) {
	if opts == nil || opts.Contributors == nil || opts.Contributors.Shorten == nil {
		return 0, 0, false
	}
	s := opts.Contributors.Shorten
	useFirst = int(s.UseFirst)
	if useFirst < 1 {
		useFirst = 1
	}
	return int(s.Min), useFirst, true
}

func familyNames(r types.Reference) []string {
	var names []string
	for _, a := range r.Author {
		switch {
		case a.Family != "":
			names = append(names, a.Family)
		case a.Literal != "":
			names = append(names, a.Literal)
		}
	}
	return names
}

func yearOf(r types.Reference) string {
	if y := r.Issued.Year(); y != 0 {
		return fmt.Sprintf("%d", y)
	}
	return "n.d."
}

func nameAPA(n types.Name) string {
	if n.Family == "" {
		return n.Literal
	}
	if n.Given == "" {
		return n.Family
	}
	return fmt.Sprintf("%s, %s.", n.Family, initialOf(n.Given))
}

func nameChicago(n types.Name) string {
	if n.Family == "" {
		return n.Literal
	}
	if n.Given == "" {
		return n.Family
	}
	return fmt.Sprintf("%s, %s", n.Family, n.Given)
}

func nameVancouver(n types.Name) string {
	if n.Family == "" {
		return n.Literal
	}
	if n.Given == "" {
		return n.Family
	}
	return fmt.Sprintf("%s %s", n.Family, initialOf(n.Given))
}

func initialOf(given string) string {
	for _, r := range given {
		return string(r)
	}
	return ""
}
