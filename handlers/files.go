package handlers

import (
	"io"
	"net/http"

	"github.com/deptlibrary/backend/service"
	"github.com/go-chi/chi/v5"
)

// FilesHandler streams stored objects (profile images) back to the client.
type FilesHandler struct {
	Storage service.ObjectStorage
}

func (h *FilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		respondError(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}
	key := chi.URLParam(r, "*")
	if key == "" {
		respondError(w, http.StatusBadRequest, "file key required")
		return
	}
	body, contentType, err := h.Storage.Open(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = io.Copy(w, body)
}
