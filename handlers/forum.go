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

type ForumHandler struct {
	DB *store.DB
}

type CreateForumPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *ForumHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.DB.ListForumPosts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []models.ForumPost{}
	}
	respond(w, http.StatusOK, posts)
}

func (h *ForumHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req CreateForumPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "title and content required")
		return
	}
	post := &models.ForumPost{
		FacultyID:  claims.FacultyID,
		AuthorName: claims.Name,
		Title:      req.Title,
		Content:    req.Content,
		Replies:    []models.ForumReply{},
		CreatedAt:  time.Now().UTC(),
	}
	id, err := h.DB.InsertForumPost(r.Context(), post)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create post")
		return
	}
	post.ID = id
	respond(w, http.StatusCreated, post)
}

type AddReplyRequest struct {
	Content string `json:"content"`
}

func (h *ForumHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	var req AddReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content required")
		return
	}
	reply := models.ForumReply{
		FacultyID:  claims.FacultyID,
		AuthorName: claims.Name,
		Content:    req.Content,
		CreatedAt:  time.Now().UTC(),
	}
	post, err := h.DB.AppendForumReply(r.Context(), postID, reply)
	if err != nil {
		respondStoreError(w, err, "post not found", "", "failed to add reply")
		return
	}
	respond(w, http.StatusOK, post)
}
