// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *IntentValidator {
	t.Helper()
	v, err := NewIntentValidator()
	require.NoError(t, err)
	return v
}

func TestValidateAcceptsFullIntent(t *testing.T) {
	v := newValidator(t)

	issues := v.Validate([]byte(`{
		"base_archetype": "apa",
		"field": "sciences",
		"class": "numeric",
		"author_format": {"form": "short", "et_al": {"min": 1, "use_first": 1}},
		"has_bibliography": true,
		"citation_preset": "minimal",
		"bibliography_preset": "flat",
		"detailed_config": false
	}`))
	assert.Empty(t, issues)
}

func TestValidateAcceptsEmptyIntent(t *testing.T) {
	v := newValidator(t)

	assert.Empty(t, v.Validate([]byte(`{}`)))
}

func TestValidateAcceptsNullEtAl(t *testing.T) {
	v := newValidator(t)

	issues := v.Validate([]byte(`{"author_format": {"form": "long", "et_al": null}}`))
	assert.Empty(t, issues)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown property", `{"flavor": "mint"}`},
		{"bad field enum", `{"field": "astrology"}`},
		{"bad class enum", `{"class": "parenthetical"}`},
		{"wrong type for has_bibliography", `{"has_bibliography": "yes"}`},
		{"author_format missing form", `{"author_format": {"et_al": null}}`},
		{"et_al out of range", `{"author_format": {"form": "short", "et_al": {"min": 300, "use_first": 1}}}`},
		{"non-object document", `"just a string"`},
	}

	v := newValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.Validate([]byte(tt.doc))
			require.NotEmpty(t, issues)
			for _, issue := range issues {
				assert.False(t, issue.ParseError)
				assert.NotEmpty(t, issue.Message)
			}
		})
	}
}

func TestValidateParseError(t *testing.T) {
	v := newValidator(t)

	issues := v.Validate([]byte(`{not json`))
	require.Len(t, issues, 1)
	assert.True(t, issues[0].ParseError)
}

func TestIssueString(t *testing.T) {
	assert.Equal(t, "/field: oops", ValidationIssue{Path: "/field", Message: "oops"}.String())
	assert.Equal(t, "oops", ValidationIssue{Message: "oops"}.String())
}
