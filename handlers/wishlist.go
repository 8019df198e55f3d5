package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/deptlibrary/backend/middleware"
	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistHandler struct {
	DB *store.DB
}

type CreateWishlistRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Note   string `json:"note"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	items, err := h.DB.ListWishlist(r.Context(), claims.FacultyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list wishlist")
		return
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	respond(w, http.StatusOK, items)
}

func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req CreateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title required")
		return
	}
	item := &models.WishlistItem{
		FacultyID: claims.FacultyID,
		Title:     req.Title,
		Author:    strings.TrimSpace(req.Author),
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: time.Now().UTC(),
	}
	id, err := h.DB.InsertWishlistItem(r.Context(), item)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to add wishlist item")
		return
	}
	item.ID = id
	respond(w, http.StatusCreated, item)
}

// Delete removes one of the caller's own wishlist items.
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid wishlist item id")
		return
	}
	if err := h.DB.DeleteWishlistItem(r.Context(), id, claims.FacultyID); err != nil {
		respondStoreError(w, err, "wishlist item not found", "", "failed to delete wishlist item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
