// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"html"
	"strings"

	"github.com/meshintel/styleforge/internal/intent"
	"github.com/meshintel/styleforge/internal/synth"
	"github.com/meshintel/styleforge/pkg/types"
)

const previewPlaceholder = "Answer more questions to see a preview."

// attachPreviews fills the rendered preview fields of a decision package.
// The engine itself never renders; everything visual happens here. Each
// answer option gets its own HTML fragment showing what picking it would
// produce, and the package gets a live preview of the intent as it stands.
func (s *Server) attachPreviews(ctx context.Context, in types.StyleIntent, pkg *types.DecisionPackage) {
	refs := s.refs.Sample(s.cfg.Corpus.SampleSize)

	for i, p := range pkg.Previews {
		merged := in
		if err := intent.Merge(&merged, p.ChoiceValue); err != nil {
			continue
		}
		pkg.Previews[i].HTML = s.citationFragment(ctx, merged, refs)
	}

	citation, bib := s.renderIntent(ctx, in, refs)
	if classIsNote(in) {
		pkg.NotePreview = citation
	} else {
		pkg.InTextPreview = citation
	}
	pkg.BibliographyPreview = strings.Join(bib, "\n")
	pkg.PreviewHTML = livePreviewHTML(citation, bib)
}

// renderIntent synthesizes the intent and renders sample text for it.
// Render failures show up inline so the wizard never stalls on them.
func (s *Server) renderIntent(ctx context.Context, in types.StyleIntent, refs []types.Reference) (citation string, bib []string) {
	style := synth.ToStyle(in)

	if style.Citation == nil {
		return "", nil
	}

	citation, err := s.renderer.Citation(ctx, style, refs)
	if err != nil {
		citation = "Error: " + err.Error()
	}

	if style.Bibliography != nil {
		bib, err = s.renderer.Bibliography(ctx, style, refs)
		if err != nil {
			bib = []string{"Error: " + err.Error()}
		}
	}
	return citation, bib
}

func (s *Server) citationFragment(ctx context.Context, in types.StyleIntent, refs []types.Reference) string {
	citation, _ := s.renderIntent(ctx, in, refs)
	if citation == "" {
		return ""
	}
	return "<div class='preview-citation'>" + html.EscapeString(citation) + "</div>"
}

// livePreviewHTML assembles the preview pane fragment. Class names match
// what the web client styles.
func livePreviewHTML(citation string, bib []string) string {
	var b strings.Builder
	b.WriteString("<div class='live-preview-content'>")

	if citation == "" {
		b.WriteString("<div class='preview-citation'>")
		b.WriteString(previewPlaceholder)
		b.WriteString("</div>")
	} else {
		b.WriteString("<div class='preview-citation'>")
		b.WriteString(html.EscapeString(citation))
		b.WriteString("</div>")
	}

	if len(bib) > 0 {
		b.WriteString("<div class='preview-bibliography'><h4>Example Bibliography</h4>")
		for _, entry := range bib {
			b.WriteString("<div class='bib-entry'>")
			b.WriteString(html.EscapeString(entry))
			b.WriteString("</div>")
		}
		b.WriteString("</div>")
	}

	b.WriteString("</div>")
	return b.String()
}

func classIsNote(in types.StyleIntent) bool {
	return in.Class != nil &&
		(*in.Class == types.ClassFootnote || *in.Class == types.ClassEndnote)
}
