// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/meshintel/styleforge/internal/intent"
	"github.com/meshintel/styleforge/internal/synth"
	"github.com/meshintel/styleforge/pkg/types"
)

// maxBodyBytes caps request bodies. Intents and styles are small.
const maxBodyBytes = 1 << 20

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "styleforge",
		"version": s.version,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) handleReferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.refs.All())
}

// readIntent decodes and validates the request body as a StyleIntent.
// Returns false after writing the error response.
func (s *Server) readIntent(w http.ResponseWriter, r *http.Request) (types.StyleIntent, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return types.StyleIntent{}, false
	}

	if issues := s.validator.Validate(body); len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, issue := range issues {
			msgs[i] = issue.String()
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "intent failed validation",
			"issues": msgs,
		})
		return types.StyleIntent{}, false
	}

	in, err := intent.DecodeIntent(body)
	if err != nil {
		var verr *intent.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
		} else {
			writeError(w, http.StatusBadRequest, "decoding intent: "+err.Error())
		}
		return types.StyleIntent{}, false
	}
	return in, true
}

// handleDecide runs the decision engine on the posted intent and attaches
// rendered previews before responding.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readIntent(w, r)
	if !ok {
		return
	}

	pkg := intent.Decide(in)
	s.attachPreviews(r.Context(), in, &pkg)
	writeJSON(w, http.StatusOK, pkg)
}

// handleGenerate synthesizes the posted intent into a style document and
// returns it as a YAML download.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readIntent(w, r)
	if !ok {
		return
	}

	style := synth.ToStyle(in)
	doc, err := synth.EmitYAML(style)
	if err != nil {
		s.log.Error("emitting style document", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "emitting style document")
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+style.Info.ID+synth.DocumentExtension+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// previewRequest is the wire shape shared with the remote render client.
type previewRequest struct {
	Style      types.Style       `json:"style"`
	References []types.Reference `json:"references"`
}

type previewResponse struct {
	Result string `json:"result"`
}

// handlePreviewCitation renders an in-text citation for an explicit
// style. Render failures come back inline in the result so a preview
// pane can show them without special-casing transport errors.
func (s *Server) handlePreviewCitation(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readPreviewRequest(w, r)
	if !ok {
		return
	}

	result, err := s.renderer.Citation(r.Context(), req.Style, req.References)
	if err != nil {
		result = "Error: " + err.Error()
	}
	writeJSON(w, http.StatusOK, previewResponse{Result: result})
}

// handlePreviewBibliography renders bibliography entries, one per line.
func (s *Server) handlePreviewBibliography(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readPreviewRequest(w, r)
	if !ok {
		return
	}

	entries, err := s.renderer.Bibliography(r.Context(), req.Style, req.References)
	result := strings.Join(entries, "\n")
	if err != nil {
		result = "Error: " + err.Error()
	}
	writeJSON(w, http.StatusOK, previewResponse{Result: result})
}

func (s *Server) readPreviewRequest(w http.ResponseWriter, r *http.Request) (previewRequest, bool) {
	var req previewRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "decoding preview request: "+err.Error())
		return previewRequest{}, false
	}
	if len(req.References) == 0 {
		req.References = s.refs.Sample(s.cfg.Corpus.SampleSize)
	}
	return req, true
}
