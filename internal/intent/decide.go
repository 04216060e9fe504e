// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"github.com/meshintel/styleforge/pkg/types"
)

// Decide analyzes the current intent and returns the next decision to be
// made. It is a pure function: the same intent always yields the same
// package. A nil Question means the precedence tree is exhausted for the
// chosen class.
func Decide(in types.StyleIntent) types.DecisionPackage {
	pkg := types.DecisionPackage{
		MissingFields: missingFields(in),
		Previews:      []types.Preview{},
	}

	for _, step := range questionTree {
		if !step.applies(in) {
			continue
		}
		q, previews := step.build(in)
		pkg.Question = &q
		pkg.Previews = previews
		break
	}

	return pkg
}

// missingFields scans for required fields that are still unset. The scan
// is independent of question order: it can list fields the precedence
// tree will never ask (AuthorDate with detailed_config=false terminates
// while author_format is still missing). That mismatch is deliberate and
// mirrors what clients were built against.
func missingFields(in types.StyleIntent) []string {
	var missing []string
	if in.Field == nil {
		missing = append(missing, "field")
	}
	if in.Class == nil {
		missing = append(missing, "class")
	}

	if in.Class != nil {
		switch *in.Class {
		case types.ClassFootnote:
			if in.HasBibliography == nil {
				missing = append(missing, "has_bibliography")
			}
			if in.AuthorFormat == nil {
				missing = append(missing, "author_format")
			}
		case types.ClassNumeric, types.ClassAuthorDate, types.ClassEndnote:
			if in.AuthorFormat == nil {
				missing = append(missing, "author_format")
			}
			if *in.Class == types.ClassAuthorDate && in.HasBibliography == nil {
				missing = append(missing, "has_bibliography")
			}
		}
	}

	return missing
}

// treeStep is one node of the question precedence tree. Steps are tried
// in declaration order and the first one whose guard matches supplies the
// question, which makes the precedence auditable branch by branch. A
// field already set never matches again: every guard requires its own
// field to be nil. The build function carries the question id.
type treeStep struct {
	applies func(types.StyleIntent) bool
	build   func(types.StyleIntent) (types.Question, []types.Preview)
}

var questionTree = []treeStep{
	{
		applies: func(in types.StyleIntent) bool { return in.Field == nil },
		build:   buildFieldQuestion,
	},
	{
		applies: func(in types.StyleIntent) bool { return in.Field != nil && in.Class == nil },
		build:   buildClassQuestion,
	},
	{
		applies: func(in types.StyleIntent) bool {
			return classIs(in, types.ClassAuthorDate) && !declinedDetail(in) && in.CitationPreset == nil
		},
		build: buildCitationPresetQuestion,
	},
	{
		applies: func(in types.StyleIntent) bool {
			return classIs(in, types.ClassAuthorDate) && !declinedDetail(in) && in.BibliographyPreset == nil
		},
		build: buildBibliographyPresetQuestion,
	},
	{
		applies: func(in types.StyleIntent) bool {
			return classIs(in, types.ClassAuthorDate) && in.DetailedConfig == nil
		},
		build: buildDetailedConfigQuestion,
	},
	{
		applies: func(in types.StyleIntent) bool {
			return classIs(in, types.ClassAuthorDate) && wantsDetail(in) && in.AuthorFormat == nil
		},
		build: buildAdvancedFormatQuestion,
	},
	{
		applies: func(in types.StyleIntent) bool {
			return classIs(in, types.ClassFootnote) && in.HasBibliography == nil
		},
		build: buildHasBibliographyQuestion,
	},
	{
		applies: func(in types.StyleIntent) bool {
			return classIs(in, types.ClassNumeric) && in.AuthorFormat == nil
		},
		build: buildNumberWrapQuestion,
	},
	{
		// Generic fallback for the note classes. AuthorDate never reaches
		// here: its subtree ends at the detailed_config step.
		applies: func(in types.StyleIntent) bool {
			return (classIs(in, types.ClassFootnote) || classIs(in, types.ClassEndnote)) &&
				in.AuthorFormat == nil
		},
		build: buildGenericFormatQuestion,
	},
}

func classIs(in types.StyleIntent, c types.CitationClass) bool {
	return in.Class != nil && *in.Class == c
}

// declinedDetail reports whether the user answered "no" to further
// refinement, which closes the whole AuthorDate subtree.
func declinedDetail(in types.StyleIntent) bool {
	return in.DetailedConfig != nil && !*in.DetailedConfig
}

func wantsDetail(in types.StyleIntent) bool {
	return in.DetailedConfig != nil && *in.DetailedConfig
}

func option(label string, p FieldPatch) types.Preview {
	return types.Preview{Label: label, ChoiceValue: EncodePatch(p)}
}

func buildFieldQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:          "field",
			Text:        "What is your academic field?",
			Description: "Select one or more fields to find appropriate styles.",
		}, []types.Preview{
			option("Humanities", SetField{Field: types.FieldHumanities}),
			option("Social Science", SetField{Field: types.FieldSocialScience}),
			option("Sciences", SetField{Field: types.FieldSciences}),
		}
}

func buildClassQuestion(in types.StyleIntent) (types.Question, []types.Preview) {
	var options []types.Preview
	switch *in.Field {
	case types.FieldHumanities:
		options = []types.Preview{
			option("Footnote", SetClass{Class: types.ClassFootnote}),
			option("Endnote", SetClass{Class: types.ClassEndnote}),
			option("Author-Date", SetClass{Class: types.ClassAuthorDate}),
		}
	case types.FieldSocialScience:
		options = []types.Preview{
			option("Author-Date", SetClass{Class: types.ClassAuthorDate}),
		}
	default: // sciences
		options = []types.Preview{
			option("Author-Date", SetClass{Class: types.ClassAuthorDate}),
			option("Numeric", SetClass{Class: types.ClassNumeric}),
		}
	}
	return types.Question{ID: "class", Text: "Select a style type"}, options
}

func buildCitationPresetQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:          "citation_preset",
			Text:        "How should citations appear in your text?",
			Description: "Choose the pattern that matches your target publication.",
		}, []types.Preview{
			option("(Smith and Jones, 2023: 34)", SetCitationPreset{Preset: "colon-locator"}),
			option("(Smith and Jones, 2023, p.34)", SetCitationPreset{Preset: "comma-sep"}),
			option("(Smith and Jones 2023, 34)", SetCitationPreset{Preset: "minimal"}),
		}
}

func buildBibliographyPresetQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:   "bibliography_preset",
			Text: "How should entries look in the bibliography?",
		}, []types.Preview{
			option("Smith, J. (2023). Title...", SetBibliographyPreset{Preset: "year-wrapped"}),
			option("Smith, J. 2023. Title...", SetBibliographyPreset{Preset: "flat"}),
		}
}

func buildDetailedConfigQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:          "detailed_config",
			Text:        "Refine further?",
			Description: "The presets cover 90% of cases. Do you need to tweak granular details like author initials or et al. rules?",
		}, []types.Preview{
			option("No, presets are fine", SetDetailedConfig{Value: false}),
			option("Yes, show detailed config", SetDetailedConfig{Value: true}),
		}
}

func buildAdvancedFormatQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:          "author_format",
			Text:        "Advanced Formatting",
			Description: "Fine-tune how authors and names are handled.",
		}, []types.Preview{
			option("Standard (APA-style et al.)", SetAuthorFormat{Format: types.NameOptions{
				Form: types.NameLong,
				EtAl: &types.EtAlConfig{Min: 3, UseFirst: 1},
			}}),
			option("Always show all authors", SetAuthorFormat{Format: types.NameOptions{
				Form: types.NameLong,
			}}),
		}
}

func buildHasBibliographyQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:          "has_bibliography",
			Text:        "Does this style include a bibliography?",
			Description: "Note formatting typically changes if a bibliography is present.",
		}, []types.Preview{
			option("Yes, include bibliography", SetHasBibliography{Value: true}),
			option("No, notes only", SetHasBibliography{Value: false}),
		}
}

func buildNumberWrapQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:   "author_format",
			Text: "How should citation numbers be wrapped?",
		}, []types.Preview{
			option("Square Brackets [1]", SetAuthorFormat{Format: types.NameOptions{
				Form: types.NameShort,
			}}),
			option("Parentheses (1)", SetAuthorFormat{Format: types.NameOptions{
				Form: types.NameLong,
			}}),
			option("Superscript ¹", SetAuthorFormat{Format: types.NameOptions{
				Form: types.NameLong,
				EtAl: &types.EtAlConfig{Min: 1, UseFirst: 1},
			}}),
		}
}

func buildGenericFormatQuestion(types.StyleIntent) (types.Question, []types.Preview) {
	return types.Question{
			ID:   "author_format",
			Text: "Choose a formatting pattern",
		}, []types.Preview{
			option("Standard", SetAuthorFormat{Format: types.NameOptions{
				Form: types.NameLong,
				EtAl: &types.EtAlConfig{Min: 3, UseFirst: 1},
			}}),
			option("Full", SetAuthorFormat{Format: types.NameOptions{
				Form: types.NameLong,
			}}),
		}
}
