// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/styleforge/pkg/types"
)

// DocumentExtension is the file extension for emitted style documents.
const DocumentExtension = ".yaml"

// SerializationError reports a failure to serialize a Style. It should
// not occur for well-formed styles; callers must surface it rather than
// substitute an empty document.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing style document: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// EmitYAML serializes a Style to the downloadable YAML document. The
// output is deterministic: the same style always produces byte-identical
// bytes, and decoding them reproduces the style.
func EmitYAML(style types.Style) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(style); err != nil {
		return nil, &SerializationError{Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses an emitted style document back into a Style.
func DecodeYAML(data []byte) (types.Style, error) {
	var style types.Style
	if err := yaml.Unmarshal(data, &style); err != nil {
		return types.Style{}, fmt.Errorf("parsing style document: %w", err)
	}
	return style, nil
}
