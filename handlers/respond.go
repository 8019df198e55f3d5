package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deptlibrary/backend/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, errorBody{Error: msg})
}

// respondStoreError maps store sentinels onto the error taxonomy. Anything
// unrecognized is a server error with the fallback message.
func respondStoreError(w http.ResponseWriter, err error, notFoundMsg, conflictMsg, fallbackMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, conflictMsg)
	default:
		respondError(w, http.StatusInternalServerError, fallbackMsg)
	}
}
