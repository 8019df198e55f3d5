package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/deptlibrary/backend/middleware"
	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/service"
	"github.com/deptlibrary/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type ProfileHandler struct {
	DB       *store.DB
	Storage  service.ObjectStorage
	MaxBytes int64
}

// targetAccount resolves the {id} path param and checks that the caller is
// either the account itself or an admin.
func (h *ProfileHandler) targetAccount(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return primitive.NilObjectID, false
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}
	callerID, _ := middleware.AccountIDFromContext(r.Context())
	if claims.Role != models.RoleAdmin && callerID != id {
		respondError(w, http.StatusForbidden, "cannot access another account's profile")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetAccount(w, r)
	if !ok {
		return
	}
	acct, err := h.DB.AccountByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "account not found", "", "failed to load profile")
		return
	}
	respond(w, http.StatusOK, acct)
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Mobile      *string `json:"mobile"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetAccount(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if req.Email != nil {
		e := strings.TrimSpace(strings.ToLower(*req.Email))
		if e == "" {
			respondError(w, http.StatusBadRequest, "email cannot be empty")
			return
		}
		if existing, err := h.DB.AccountByEmail(r.Context(), e); err == nil && existing.ID != id {
			respondError(w, http.StatusConflict, "email already in use")
			return
		}
		req.Email = &e
	}
	err := h.DB.UpdateAccount(r.Context(), id, req.Name, req.Email, req.Mobile, req.Department, req.Designation)
	if err != nil {
		respondStoreError(w, err, "account not found", "email already in use", "failed to update profile")
		return
	}
	acct, err := h.DB.AccountByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "account not found", "", "failed to load profile")
		return
	}
	respond(w, http.StatusOK, acct)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetAccount(w, r)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "currentPassword and newPassword required")
		return
	}
	if len(req.NewPassword) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	acct, err := h.DB.AccountByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "account not found", "", "failed to change password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(req.CurrentPassword)) != nil {
		respondError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to change password")
		return
	}
	if err := h.DB.SetPassword(r.Context(), id, string(hash)); err != nil {
		respondStoreError(w, err, "account not found", "", "failed to change password")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// UploadImage replaces the account's profile image. PNG and JPEG only.
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetAccount(w, r)
	if !ok {
		return
	}
	if h.Storage == nil {
		respondError(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing image")
		return
	}
	defer file.Close()

	// The stored key keeps the upload's extension and LocalStorage serves by
	// extension, so the extension must match what the bytes actually are. The
	// client-supplied Content-Type header is not trusted.
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(header.Filename)))
	wantType, ok := map[string]string{".png": "image/png", ".jpg": "image/jpeg", ".jpeg": "image/jpeg"}[ext]
	if !ok {
		respondError(w, http.StatusBadRequest, "only png and jpeg images are allowed")
		return
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		respondError(w, http.StatusBadRequest, "could not read image")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if contentType != wantType {
		respondError(w, http.StatusBadRequest, "file content does not match its extension")
		return
	}

	acct, err := h.DB.AccountByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "account not found", "", "failed to upload image")
		return
	}

	key, err := h.Storage.Put(r.Context(), "profiles/", header.Filename, io.MultiReader(bytes.NewReader(head), file), contentType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	if err := h.DB.SetProfileImage(r.Context(), id, key); err != nil {
		if delErr := h.Storage.Delete(r.Context(), key); delErr != nil {
			log.Printf("profile image: clean up %s: %v", key, delErr)
		}
		respondStoreError(w, err, "account not found", "", "failed to upload image")
		return
	}
	if acct.ProfileImage != "" && acct.ProfileImage != key {
		if err := h.Storage.Delete(r.Context(), acct.ProfileImage); err != nil {
			log.Printf("profile image: delete old %s: %v", acct.ProfileImage, err)
		}
	}
	respond(w, http.StatusOK, map[string]string{"profileImage": key})
}
