// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meshintel/styleforge/internal/corpus"
	"github.com/meshintel/styleforge/internal/render"
	"github.com/meshintel/styleforge/internal/stylestore"
	"github.com/meshintel/styleforge/pkg/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := stylestore.NewStore(types.StoreConfig{
		Path: filepath.Join(t.TempDir(), "styles.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	refs := corpus.New(map[string]types.Reference{
		"vaswani_attention": {
			Title: "Attention Is All You Need",
			Author: []types.Name{
				{Family: "Vaswani", Given: "Ashish"},
				{Family: "Shazeer", Given: "Noam"},
				{Family: "Parmar", Given: "Niki"},
			},
			Issued: &types.CSLDate{DateParts: [][]int{{2017}}},
		},
		"foucault_discipline": {
			Title:  "Discipline and Punish",
			Author: []types.Name{{Family: "Foucault", Given: "Michel"}},
			Issued: &types.CSLDate{DateParts: [][]int{{1975}}},
		},
	})

	srv, err := New(types.ServerConfig{}, zap.NewNop(), store, refs, render.Local{}, "test")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path, owner, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set("X-Owner", owner)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRootAndVersion(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/version")
	require.NoError(t, err)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "test", body["version"])

	resp, err = ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	assert.Equal(t, "styleforge", body["service"])
}

func TestReferences(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/references")
	require.NoError(t, err)
	var refs map[string]types.Reference
	decodeBody(t, resp, &refs)
	require.Len(t, refs, 2)
	assert.Equal(t, "Discipline and Punish", refs["foucault_discipline"].Title)
}

func TestDecideEmptyIntent(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/v1/decide", "", `{}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pkg types.DecisionPackage
	decodeBody(t, resp, &pkg)
	require.NotNil(t, pkg.Question)
	assert.Equal(t, "field", pkg.Question.ID)
	assert.Len(t, pkg.Previews, 3)
	assert.Contains(t, pkg.PreviewHTML, "live-preview-content")
	assert.Contains(t, pkg.PreviewHTML, "Answer more questions")
}

func TestDecideRendersPreviews(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/v1/decide", "",
		`{"field": "social_science", "class": "author_date", "citation_preset": "comma-sep"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pkg types.DecisionPackage
	decodeBody(t, resp, &pkg)
	require.NotNil(t, pkg.Question)
	assert.Equal(t, "bibliography_preset", pkg.Question.ID)

	// The intent already resolves to a renderable style.
	assert.Contains(t, pkg.InTextPreview, "Vaswani")
	assert.Contains(t, pkg.PreviewHTML, "preview-citation")
	for _, p := range pkg.Previews {
		assert.Contains(t, p.HTML, "preview-citation")
	}
}

func TestDecideRejectsUnknownField(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/v1/decide", "", `{"flavor": "mint"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDecideRejectsBadEnum(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/v1/decide", "", `{"field": "astrology"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGenerateReturnsYAMLDownload(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/v1/generate", "",
		`{"field": "sciences", "class": "numeric", "has_bibliography": true}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-yaml", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "custom-style.yaml")

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "preset: vancouver")
}

func TestPreviewCitation(t *testing.T) {
	ts := newTestServer(t)

	body := `{"style": {"info": {"id": "x", "title": "X"}, "citation": {"preset": "apa", "wrap": "parentheses"}}}`
	resp := postJSON(t, ts, "/preview/citation", "", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pr previewResponse
	decodeBody(t, resp, &pr)
	assert.True(t, strings.HasPrefix(pr.Result, "("), "wrap should apply: %q", pr.Result)
	assert.Contains(t, pr.Result, "Vaswani")
}

func TestPreviewErrorIsInline(t *testing.T) {
	ts := newTestServer(t)

	// A style without a citation spec cannot render, but the endpoint
	// still answers 200 with the error in the result.
	resp := postJSON(t, ts, "/preview/citation", "", `{"style": {"info": {"id": "x", "title": "X"}}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pr previewResponse
	decodeBody(t, resp, &pr)
	assert.True(t, strings.HasPrefix(pr.Result, "Error:"), "got %q", pr.Result)
}

func TestStyleLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/styles", "ada",
		`{"name": "Mine", "public": true, "style": {"info": {"id": "custom-style", "title": "Custom Style"}, "citation": {"preset": "apa"}}}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var saved stylestore.Record
	decodeBody(t, resp, &saved)
	require.NotEmpty(t, saved.ID)

	// Fetch it back.
	getResp, err := ts.Client().Get(ts.URL + "/api/styles/" + saved.ID)
	require.NoError(t, err)
	var got stylestore.Record
	decodeBody(t, getResp, &got)
	assert.Equal(t, "Mine", got.Name)

	// Another owner forks it.
	forkResp := postJSON(t, ts, "/api/styles/"+saved.ID+"/fork", "grace", "")
	assert.Equal(t, http.StatusCreated, forkResp.StatusCode)
	var fork stylestore.Record
	decodeBody(t, forkResp, &fork)
	assert.Equal(t, "Mine (Fork)", fork.Name)
	assert.Equal(t, "grace", fork.Owner)

	// The hub lists only the public original.
	hubResp, err := ts.Client().Get(ts.URL + "/api/hub")
	require.NoError(t, err)
	var hub []stylestore.Record
	decodeBody(t, hubResp, &hub)
	require.Len(t, hub, 1)
	assert.Equal(t, saved.ID, hub[0].ID)

	// Delete by the wrong owner fails, by the right owner succeeds.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/styles/"+saved.ID, nil)
	require.NoError(t, err)
	req.Header.Set("X-Owner", "grace")
	delResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, delResp.StatusCode)

	req.Header.Set("X-Owner", "ada")
	delResp, err = ts.Client().Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
}

func TestBookmarkFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/styles", "ada",
		`{"name": "Shared", "public": true, "style": {"info": {"id": "s", "title": "S"}}}`)
	var saved stylestore.Record
	decodeBody(t, resp, &saved)

	markResp := postJSON(t, ts, "/api/styles/"+saved.ID+"/bookmark", "grace", "")
	markResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, markResp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/bookmarks", nil)
	require.NoError(t, err)
	req.Header.Set("X-Owner", "grace")
	listResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	var marks []stylestore.Record
	decodeBody(t, listResp, &marks)
	require.Len(t, marks, 1)
	assert.Equal(t, saved.ID, marks[0].ID)
}

func TestStyleHistoryEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/styles", "ada",
		`{"name": "v1", "style": {"info": {"id": "s", "title": "S"}, "citation": {"preset": "apa"}}}`)
	var saved stylestore.Record
	decodeBody(t, resp, &saved)

	// Update creates a second revision.
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/styles/"+saved.ID,
		strings.NewReader(`{"name": "v2", "style": {"info": {"id": "s", "title": "S"}, "citation": {"preset": "vancouver"}}}`))
	require.NoError(t, err)
	req.Header.Set("X-Owner", "ada")
	putResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	putResp.Body.Close()
	require.Equal(t, http.StatusOK, putResp.StatusCode)

	histResp, err := ts.Client().Get(ts.URL + "/api/styles/" + saved.ID + "/history")
	require.NoError(t, err)
	var revs []stylestore.Revision
	decodeBody(t, histResp, &revs)
	require.Len(t, revs, 2)
	assert.Equal(t, types.PresetAPA, revs[0].Style.Citation.Preset)
	assert.Equal(t, types.PresetVancouver, revs[1].Style.Citation.Preset)
}

func TestEmptyListsAreArrays(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/hub")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/decide", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
