package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookRejectsMissingFields(t *testing.T) {
	h := &BooksHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books",
		strings.NewReader(`{"bookId":"ACC-1001","title":"  "}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bookId, title and author required")
}

func TestCreateBookRejectsInvalidJSON(t *testing.T) {
	h := &BooksHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books", strings.NewReader(`{`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookRejectsInvalidID(t *testing.T) {
	h := &BooksHandler{}
	req := httptest.NewRequest(http.MethodPut, "/api/admin/books/zzz", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Update(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid book id")
}

func TestDeleteBookRejectsInvalidID(t *testing.T) {
	h := &BooksHandler{}
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/books/zzz", nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBooksRejectsUnknownStatus(t *testing.T) {
	h := &BooksHandler{}
	req := httptest.NewRequest(http.MethodGet, "/api/faculty/books?status=lost", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status must be available or issued")
}
