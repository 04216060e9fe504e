// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a style document plus reference data into
// formatted citation and bibliography text. The engine core only depends
// on the Renderer contract; rendering failures are the caller's to
// tolerate (live previews omit text rather than fail the request).
package render

import (
	"context"

	"github.com/meshintel/styleforge/pkg/types"
)

// Renderer formats citations and bibliography entries for a style.
// Implementations must be safe for concurrent use: calls are
// request-scoped and carry no state between invocations.
type Renderer interface {
	// Citation renders a single in-text citation citing all refs.
	Citation(ctx context.Context, style types.Style, refs []types.Reference) (string, error)

	// Bibliography renders one entry per reference, in input order.
	Bibliography(ctx context.Context, style types.Style, refs []types.Reference) ([]string, error)
}
