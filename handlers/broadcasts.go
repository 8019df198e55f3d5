package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/store"
)

type BroadcastsHandler struct {
	DB *store.DB
}

type CreateBroadcastRequest struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	Priority       string `json:"priority"`
	ExpiresInHours int    `json:"expiresInHours"`
}

func priorityValid(p string) bool {
	for _, v := range models.ValidPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// Create publishes a broadcast. Expiry is enforced by the store's TTL index;
// there is no edit or manual delete.
func (h *BroadcastsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBroadcastRequest
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
	priority := strings.TrimSpace(strings.ToLower(req.Priority))
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !priorityValid(priority) {
		respondError(w, http.StatusBadRequest, "priority must be normal or urgent")
		return
	}
	if req.ExpiresInHours <= 0 {
		respondError(w, http.StatusBadRequest, "expiresInHours must be positive")
		return
	}
	now := time.Now().UTC()
	b := &models.Broadcast{
		Title:          req.Title,
		Content:        req.Content,
		Priority:       priority,
		ExpiresInHours: req.ExpiresInHours,
		ExpiresAt:      now.Add(time.Duration(req.ExpiresInHours) * time.Hour),
		CreatedAt:      now,
	}
	id, err := h.DB.InsertBroadcast(r.Context(), b)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create broadcast")
		return
	}
	b.ID = id
	respond(w, http.StatusCreated, b)
}

func (h *BroadcastsHandler) List(w http.ResponseWriter, r *http.Request) {
	broadcasts, err := h.DB.ActiveBroadcasts(r.Context(), time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list broadcasts")
		return
	}
	if broadcasts == nil {
		broadcasts = []models.Broadcast{}
	}
	respond(w, http.StatusOK, broadcasts)
}
