// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the wizard engine, the style store, and live
// previews over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/meshintel/styleforge/internal/corpus"
	"github.com/meshintel/styleforge/internal/render"
	"github.com/meshintel/styleforge/internal/schema"
	"github.com/meshintel/styleforge/internal/stylestore"
	"github.com/meshintel/styleforge/pkg/types"
)

// Server wires the decision engine, synthesizer, renderer, and style
// store behind an HTTP API.
type Server struct {
	cfg       types.ServerConfig
	log       *zap.Logger
	store     *stylestore.Store
	refs      *corpus.Corpus
	renderer  render.Renderer
	validator *schema.IntentValidator
	version   string
}

// New builds a Server. The renderer may be the built-in one or a remote
// render service client.
func New(cfg types.ServerConfig, log *zap.Logger, store *stylestore.Store, refs *corpus.Corpus, renderer render.Renderer, version string) (*Server, error) {
	validator, err := schema.NewIntentValidator()
	if err != nil {
		return nil, fmt.Errorf("building intent validator: %w", err)
	}
	return &Server{
		cfg:       cfg,
		log:       log,
		store:     store,
		refs:      refs,
		renderer:  renderer,
		validator: validator,
		version:   version,
	}, nil
}

// Handler returns the full route table wrapped in logging and CORS
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /version", s.handleVersion)
	mux.HandleFunc("GET /references", s.handleReferences)

	mux.HandleFunc("POST /api/v1/decide", s.handleDecide)
	mux.HandleFunc("POST /api/v1/generate", s.handleGenerate)

	mux.HandleFunc("POST /preview/citation", s.handlePreviewCitation)
	mux.HandleFunc("POST /preview/bibliography", s.handlePreviewBibliography)

	mux.HandleFunc("GET /api/styles", s.handleListStyles)
	mux.HandleFunc("POST /api/styles", s.handleSaveStyle)
	mux.HandleFunc("GET /api/styles/{id}", s.handleGetStyle)
	mux.HandleFunc("PUT /api/styles/{id}", s.handleUpdateStyle)
	mux.HandleFunc("DELETE /api/styles/{id}", s.handleDeleteStyle)
	mux.HandleFunc("POST /api/styles/{id}/fork", s.handleForkStyle)
	mux.HandleFunc("GET /api/styles/{id}/history", s.handleStyleHistory)
	mux.HandleFunc("POST /api/styles/{id}/bookmark", s.handleAddBookmark)
	mux.HandleFunc("DELETE /api/styles/{id}/bookmark", s.handleRemoveBookmark)
	mux.HandleFunc("GET /api/bookmarks", s.handleListBookmarks)
	mux.HandleFunc("GET /api/hub", s.handleHub)

	return s.withLogging(withCORS(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withCORS answers preflight requests and allows browser clients from
// any origin. The API carries no credentials.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Owner")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ownerFrom identifies the caller. There is no auth layer; the X-Owner
// header scopes styles and bookmarks per client.
func ownerFrom(r *http.Request) string {
	if owner := r.Header.Get("X-Owner"); owner != "" {
		return owner
	}
	return "anonymous"
}

func decodeJSONBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
