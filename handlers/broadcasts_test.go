package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBroadcastRejectsMissingFields(t *testing.T) {
	h := &BroadcastsHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/broadcasts", strings.NewReader(`{"title":"Closed"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title and content required")
}

func TestCreateBroadcastRejectsUnknownPriority(t *testing.T) {
	h := &BroadcastsHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/broadcasts",
		strings.NewReader(`{"title":"Closed","content":"Library closed Friday","priority":"critical","expiresInHours":24}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "priority must be normal or urgent")
}

func TestCreateBroadcastRejectsNonPositiveExpiry(t *testing.T) {
	h := &BroadcastsHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/broadcasts",
		strings.NewReader(`{"title":"Closed","content":"Library closed Friday","expiresInHours":0}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expiresInHours must be positive")
}
