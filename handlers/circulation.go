package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/deptlibrary/backend/middleware"
	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CirculationService is what the handler needs from service.Circulation.
type CirculationService interface {
	Issue(ctx context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error)
	Return(ctx context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error)
	Dashboard(ctx context.Context, accountID primitive.ObjectID) (*service.Dashboard, error)
}

type CirculationHandler struct {
	Service CirculationService
}

func (h *CirculationHandler) bookParam(w http.ResponseWriter, r *http.Request) (bookID, accountID primitive.ObjectID, ok bool) {
	bookID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	accountID, found := middleware.AccountIDFromContext(r.Context())
	if !found {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return bookID, accountID, true
}

func (h *CirculationHandler) Issue(w http.ResponseWriter, r *http.Request) {
	bookID, accountID, ok := h.bookParam(w, r)
	if !ok {
		return
	}
	book, err := h.Service.Issue(r.Context(), bookID, accountID)
	if err != nil {
		respondCirculationError(w, err)
		return
	}
	respond(w, http.StatusOK, book)
}

func (h *CirculationHandler) Return(w http.ResponseWriter, r *http.Request) {
	bookID, accountID, ok := h.bookParam(w, r)
	if !ok {
		return
	}
	book, err := h.Service.Return(r.Context(), bookID, accountID)
	if err != nil {
		respondCirculationError(w, err)
		return
	}
	respond(w, http.StatusOK, book)
}

func (h *CirculationHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	dash, err := h.Service.Dashboard(r.Context(), accountID)
	if err != nil {
		respondCirculationError(w, err)
		return
	}
	respond(w, http.StatusOK, dash)
}

func respondCirculationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound), errors.Is(err, service.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBookAlreadyIssued),
		errors.Is(err, service.ErrBookNotIssued),
		errors.Is(err, service.ErrNotHolder),
		errors.Is(err, service.ErrAccountInactive):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "circulation request failed")
	}
}
