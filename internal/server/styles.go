// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"

	"github.com/meshintel/styleforge/internal/stylestore"
	"github.com/meshintel/styleforge/pkg/types"
)

// styleRequest is the write shape for saving a style.
type styleRequest struct {
	Name   string      `json:"name"`
	Public bool        `json:"public"`
	Style  types.Style `json:"style"`
}

func (s *Server) handleListStyles(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context(), ownerFrom(r))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(recs))
}

func (s *Server) handleSaveStyle(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "decoding style: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "style name is required")
		return
	}

	saved, err := s.store.Save(r.Context(), stylestore.Record{
		Owner:  ownerFrom(r),
		Name:   req.Name,
		Public: req.Public,
		Style:  req.Style,
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetStyle(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateStyle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	owner := ownerFrom(r)

	existing, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if existing.Owner != owner {
		writeError(w, http.StatusForbidden, "style belongs to another owner")
		return
	}

	var req styleRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "decoding style: "+err.Error())
		return
	}
	if req.Name == "" {
		req.Name = existing.Name
	}

	existing.Name = req.Name
	existing.Public = req.Public
	existing.Style = req.Style
	saved, err := s.store.Save(r.Context(), existing)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteStyle(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id"), ownerFrom(r)); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleForkStyle(w http.ResponseWriter, r *http.Request) {
	fork, err := s.store.Fork(r.Context(), r.PathValue("id"), ownerFrom(r))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fork)
}

func (s *Server) handleStyleHistory(w http.ResponseWriter, r *http.Request) {
	revs, err := s.store.History(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revs)
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.store.AddBookmark(r.Context(), ownerFrom(r), r.PathValue("id")); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveBookmark(r.Context(), ownerFrom(r), r.PathValue("id")); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListBookmarks(r.Context(), ownerFrom(r))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(recs))
}

func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListPublic(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(recs))
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, stylestore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "style not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// emptyIfNil keeps list responses as [] rather than null.
func emptyIfNil(recs []stylestore.Record) []stylestore.Record {
	if recs == nil {
		return []stylestore.Record{}
	}
	return recs
}
