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

type FeedbackHandler struct {
	DB *store.DB
}

type CreateFeedbackRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func feedbackCategoryValid(c string) bool {
	for _, v := range models.ValidFeedbackCategories {
		if v == c {
			return true
		}
	}
	return false
}

func feedbackStatusValid(s string) bool {
	for _, v := range models.ValidFeedbackStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" {
		respondError(w, http.StatusBadRequest, "title and description required")
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.FeedbackOther
	}
	if !feedbackCategoryValid(category) {
		respondError(w, http.StatusBadRequest, "category must be Library, Infrastructure, Technical or Other")
		return
	}
	now := time.Now().UTC()
	f := &models.Feedback{
		FacultyID:   claims.FacultyID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Status:      models.FeedbackPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := h.DB.InsertFeedback(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}
	f.ID = id
	respond(w, http.StatusCreated, f)
}

// ListOwn returns the calling faculty's feedback.
func (h *FeedbackHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.list(w, r, claims.FacultyID)
}

// ListAll returns every feedback record (admin view).
func (h *FeedbackHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

func (h *FeedbackHandler) list(w http.ResponseWriter, r *http.Request, facultyID string) {
	feedbacks, err := h.DB.ListFeedback(r.Context(), facultyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	respond(w, http.StatusOK, feedbacks)
}

type ReviewFeedbackRequest struct {
	Status        string `json:"status"`
	AdminResponse string `json:"adminResponse"`
}

func (h *FeedbackHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid feedback id")
		return
	}
	var req ReviewFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !feedbackStatusValid(req.Status) {
		respondError(w, http.StatusBadRequest, "status must be Pending, Reviewed or Resolved")
		return
	}
	f, err := h.DB.ReviewFeedback(r.Context(), id, req.Status, strings.TrimSpace(req.AdminResponse))
	if err != nil {
		respondStoreError(w, err, "feedback not found", "", "failed to update feedback")
		return
	}
	respond(w, http.StatusOK, f)
}
