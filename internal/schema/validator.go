// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema provides JSON Schema validation for intent documents
// arriving over the wire.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed all:schemas
var schemaFS embed.FS

// ValidationIssue represents a single schema validation error.
type ValidationIssue struct {
	Path       string `json:"path"`
	Message    string `json:"message"`
	ParseError bool   `json:"-"` // true when the error is a JSON parse failure
}

func (e ValidationIssue) String() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// IntentValidator validates intent JSON documents against the embedded
// schema.
type IntentValidator struct {
	schema *jsonschema.Schema
}

// NewIntentValidator creates a validator with the embedded schema loaded.
func NewIntentValidator() (*IntentValidator, error) {
	const root = "intent.schema.json"

	data, err := schemaFS.ReadFile("schemas/" + root)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	var schemaDoc any
	if err := json.Unmarshal(data, &schemaDoc); err != nil {
		return nil, fmt.Errorf("parse embedded schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(root, schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := c.Compile(root)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &IntentValidator{schema: schema}, nil
}

// Validate validates raw intent JSON against the schema.
func (v *IntentValidator) Validate(raw []byte) []ValidationIssue {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []ValidationIssue{{Message: fmt.Sprintf("failed to parse JSON: %v", err), ParseError: true}}
	}
	return v.ValidateDocument(doc)
}

// ValidateDocument validates an already-parsed JSON document.
func (v *IntentValidator) ValidateDocument(doc any) []ValidationIssue {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []ValidationIssue{{Message: err.Error()}}
	}

	return collectIssues(validationErr)
}

// collectIssues recursively collects all leaf validation errors.
func collectIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue

	instancePath := "/" + strings.Join(ve.InstanceLocation, "/")
	if len(ve.InstanceLocation) == 0 {
		instancePath = ""
	}

	if len(ve.Causes) == 0 {
		msg := ve.Error()
		if msg != "" {
			issues = append(issues, ValidationIssue{
				Path:    instancePath,
				Message: msg,
			})
		}
	} else {
		for _, cause := range ve.Causes {
			issues = append(issues, collectIssues(cause)...)
		}
	}

	return issues
}
