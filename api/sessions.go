package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cover-photo/session"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.manager.List()
	infos := make([]session.Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Width *int `json:"width"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Width == nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.manager.Create(*req.Width)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.Info())
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Info())
}

func (h *handler) killSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Kill(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to discard session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) resizeViewport(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Width *int `json:"width"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Width == nil || *req.Width < 0 {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	applied := s.Resize(*req.Width)
	writeJSON(w, http.StatusOK, map[string]any{
		"applied": applied,
		"config":  s.Config(),
	})
}
