// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meshintel/styleforge/internal/httputil"
	"github.com/meshintel/styleforge/pkg/types"
)

// Remote is a client for an external render service exposing the
// /preview/citation and /preview/bibliography endpoints. Requests retry
// on HTTP 429 with exponential backoff.
type Remote struct {
	cfg    types.RenderConfig
	client *http.Client
}

var _ Renderer = (*Remote)(nil)

// NewRemote builds a render service client from configuration.
func NewRemote(cfg types.RenderConfig) *Remote {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Remote{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// previewRequest is the render service request body.
type previewRequest struct {
	Style      types.Style       `json:"style"`
	References []types.Reference `json:"references"`
}

// previewResponse is the render service response body.
type previewResponse struct {
	Result string `json:"result"`
}

// Citation renders an in-text citation via the render service.
func (r *Remote) Citation(ctx context.Context, style types.Style, refs []types.Reference) (string, error) {
	return r.preview(ctx, "/preview/citation", style, refs)
}

// Bibliography renders bibliography entries via the render service. The
// service returns entries joined by newlines.
func (r *Remote) Bibliography(ctx context.Context, style types.Style, refs []types.Reference) ([]string, error) {
	result, err := r.preview(ctx, "/preview/bibliography", style, refs)
	if err != nil {
		return nil, err
	}
	if result == "" {
		return nil, nil
	}
	return strings.Split(result, "\n"), nil
}

func (r *Remote) preview(ctx context.Context, path string, style types.Style, refs []types.Reference) (string, error) {
	body, err := json.Marshal(previewRequest{Style: style, References: refs})
	if err != nil {
		return "", fmt.Errorf("encoding render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(r.cfg.BaseURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", r.cfg.UserAgent)
	}
	if r.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, r.client, req, r.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("render service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("render service returned HTTP %d", resp.StatusCode)
	}

	var pr previewResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("parsing render response: %w", err)
	}
	return pr.Result, nil
}
