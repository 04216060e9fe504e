// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"errors"
	"testing"

	"github.com/meshintel/styleforge/pkg/types"
)

func TestMergeAppliesRecognizedKeys(t *testing.T) {
	var in types.StyleIntent

	if err := Merge(&in, []byte(`{"field": "humanities"}`)); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if in.Field == nil || *in.Field != types.FieldHumanities {
		t.Errorf("Field = %v, want humanities", in.Field)
	}

	if err := Merge(&in, []byte(`{"class": "footnote"}`)); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if in.Class == nil || *in.Class != types.ClassFootnote {
		t.Errorf("Class = %v, want footnote", in.Class)
	}
}

func TestMergeBibliographyPresetImpliesBibliography(t *testing.T) {
	var in types.StyleIntent
	patch := EncodePatch(SetBibliographyPreset{Preset: "year-wrapped"})

	if err := Merge(&in, patch); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if in.BibliographyPreset == nil || *in.BibliographyPreset != "year-wrapped" {
		t.Errorf("BibliographyPreset = %v, want year-wrapped", in.BibliographyPreset)
	}
	if in.HasBibliography == nil || !*in.HasBibliography {
		t.Error("choosing a bibliography layout should imply has_bibliography=true")
	}
}

func TestMergeAuthorFormatWithNullEtAl(t *testing.T) {
	var in types.StyleIntent
	raw := []byte(`{"author_format": {"form": "long", "et_al": null}}`)

	if err := Merge(&in, raw); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if in.AuthorFormat == nil {
		t.Fatal("AuthorFormat not set")
	}
	if in.AuthorFormat.Form != types.NameLong {
		t.Errorf("Form = %q, want long", in.AuthorFormat.Form)
	}
	if in.AuthorFormat.EtAl != nil {
		t.Errorf("EtAl = %+v, want nil (never truncate)", in.AuthorFormat.EtAl)
	}
}

func TestMergeRejectsMalformedPatches(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown key", `{"colour_scheme": "dark"}`},
		{"wrong value shape", `{"has_bibliography": "yes"}`},
		{"unknown field enum", `{"field": "astrology"}`},
		{"unknown class enum", `{"class": "interpretive_dance"}`},
		{"unknown name form", `{"author_format": {"form": "medium", "et_al": null}}`},
		{"not an object", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := types.StyleIntent{}
			err := Merge(&in, []byte(tt.raw))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error type = %T, want *ValidationError", err)
			}
		})
	}
}

func TestMergeFailureLeavesIntentUntouched(t *testing.T) {
	in := types.StyleIntent{Field: fieldPtr(types.FieldSciences)}

	// The class value is valid but the second key is unknown; nothing
	// from the patch may be applied.
	err := Merge(&in, []byte(`{"class": "numeric", "bogus": true}`))
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if in.Class != nil {
		t.Errorf("Class = %v, want nil after failed merge", in.Class)
	}
	if in.Field == nil || *in.Field != types.FieldSciences {
		t.Error("pre-existing field was disturbed by a failed merge")
	}
}

func TestMergeAcceptsBaseArchetype(t *testing.T) {
	var in types.StyleIntent
	if err := Merge(&in, []byte(`{"base_archetype": "apa"}`)); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if in.BaseArchetype == nil || *in.BaseArchetype != "apa" {
		t.Errorf("BaseArchetype = %v, want apa", in.BaseArchetype)
	}
	// Informational only: the engine never asks for it.
	pkg := Decide(in)
	if pkg.Question == nil || pkg.Question.ID != "field" {
		t.Errorf("question = %+v, want field", pkg.Question)
	}
}

func TestDecodeIntentRoundTripsPatches(t *testing.T) {
	patches := []FieldPatch{
		SetField{Field: types.FieldSciences},
		SetClass{Class: types.ClassNumeric},
		SetAuthorFormat{Format: types.NameOptions{
			Form: types.NameLong,
			EtAl: &types.EtAlConfig{Min: 3, UseFirst: 1},
		}},
	}

	var in types.StyleIntent
	for _, p := range patches {
		if err := Merge(&in, EncodePatch(p)); err != nil {
			t.Fatalf("Merge(%T): %v", p, err)
		}
	}

	if in.AuthorFormat == nil || in.AuthorFormat.EtAl == nil {
		t.Fatal("author format did not survive the wire round trip")
	}
	if in.AuthorFormat.EtAl.Min != 3 || in.AuthorFormat.EtAl.UseFirst != 1 {
		t.Errorf("EtAl = %+v, want {3 1}", in.AuthorFormat.EtAl)
	}
}
