package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BooksHandler struct {
	DB *store.DB
}

type CreateBookRequest struct {
	BookID       string `json:"bookId"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Category     string `json:"category"`
	Publisher    string `json:"publisher"`
	Source       string `json:"source"`
	PlaceLocated string `json:"placeLocated"`
}

// List serves both the faculty catalog and the admin inventory view.
// Optional query params: status, category, q (title/author substring).
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != models.StatusAvailable && status != models.StatusIssued {
		respondError(w, http.StatusBadRequest, "status must be available or issued")
		return
	}
	books, err := h.DB.ListBooks(r.Context(), store.BookFilter{
		Status:   status,
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	respond(w, http.StatusOK, books)
}

func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "book not found", "", "failed to load book")
		return
	}
	respond(w, http.StatusOK, book)
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.BookID = strings.TrimSpace(req.BookID)
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if req.BookID == "" || req.Title == "" || req.Author == "" {
		respondError(w, http.StatusBadRequest, "bookId, title and author required")
		return
	}
	now := time.Now().UTC()
	book := &models.Book{
		BookID:       req.BookID,
		Title:        req.Title,
		Author:       req.Author,
		Category:     strings.TrimSpace(req.Category),
		Publisher:    strings.TrimSpace(req.Publisher),
		Source:       strings.TrimSpace(req.Source),
		PlaceLocated: strings.TrimSpace(req.PlaceLocated),
		Status:       models.StatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := h.DB.InsertBook(r.Context(), book)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create book")
		return
	}
	book.ID = id
	respond(w, http.StatusCreated, book)
}

type UpdateBookRequest struct {
	BookID       *string `json:"bookId"`
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	Category     *string `json:"category"`
	Publisher    *string `json:"publisher"`
	Source       *string `json:"source"`
	PlaceLocated *string `json:"placeLocated"`
}

// Update edits descriptive fields. Status, issuedTo and issuedDate are owned by
// the issue/return flow and cannot be set here.
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	for name, v := range map[string]*string{"bookId": req.BookID, "title": req.Title, "author": req.Author} {
		if v != nil && strings.TrimSpace(*v) == "" {
			respondError(w, http.StatusBadRequest, name+" cannot be empty")
			return
		}
	}
	err = h.DB.UpdateBookDetails(r.Context(), id, req.BookID, req.Title, req.Author,
		req.Category, req.Publisher, req.Source, req.PlaceLocated)
	if err != nil {
		respondStoreError(w, err, "book not found", "", "failed to update book")
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "book not found", "", "failed to load book")
		return
	}
	respond(w, http.StatusOK, book)
}

func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	if err := h.DB.DeleteBook(r.Context(), id); err != nil {
		respondStoreError(w, err, "book not found", "cannot delete an issued book", "failed to delete book")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
