package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/deptlibrary/backend/middleware"
	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/service"
	"github.com/deptlibrary/backend/store"
	"github.com/deptlibrary/backend/utils"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// AuthStore is the slice of the store the auth flows need. *store.DB
// implements it; tests substitute an in-memory mock.
type AuthStore interface {
	AccountByFacultyID(ctx context.Context, facultyID string) (*models.Account, error)
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
	ClaimAccount(ctx context.Context, id primitive.ObjectID, email, passwordHash, mobile string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) error
}

type AuthHandler struct {
	DB        AuthStore
	JWTSecret string
	TokenTTL  time.Duration
	Mailer    *service.Mailer // nil when SMTP is not configured; tokens are logged instead
}

type SignupRequest struct {
	FacultyID string `json:"facultyId"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Mobile    string `json:"mobile"`
}

type LoginRequest struct {
	FacultyID string `json:"facultyId"`
	Password  string `json:"password"`
}

type AccountSummary struct {
	ID        string `json:"id"`
	FacultyID string `json:"facultyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Account AccountSummary `json:"account"`
}

// Signup claims a faculty record previously imported by an admin. There is no
// self-service account creation without an imported record.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.FacultyID = strings.TrimSpace(req.FacultyID)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.FacultyID == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "facultyId, email and password required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	acct, err := h.DB.AccountByFacultyID(r.Context(), req.FacultyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no faculty record for this id; contact the library office")
			return
		}
		respondError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	if acct.Claimed {
		respondError(w, http.StatusConflict, "account already registered")
		return
	}
	if existing, err := h.DB.AccountByEmail(r.Context(), req.Email); err == nil && existing != nil {
		respondError(w, http.StatusConflict, "email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	if err := h.DB.ClaimAccount(r.Context(), acct.ID, req.Email, string(hash), strings.TrimSpace(req.Mobile)); err != nil {
		if errors.Is(err, store.ErrConflict) {
			respondError(w, http.StatusConflict, "account already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	respond(w, http.StatusCreated, AccountSummary{
		ID:        acct.ID.Hex(),
		FacultyID: acct.FacultyID,
		Name:      acct.Name,
		Email:     req.Email,
		Role:      acct.Role,
	})
}

// Login verifies facultyId + password and issues a signed session token. A
// missing account and a wrong password are deliberately the same error.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.FacultyID = strings.TrimSpace(req.FacultyID)
	if req.FacultyID == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "facultyId and password required")
		return
	}

	acct, err := h.DB.AccountByFacultyID(r.Context(), req.FacultyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !acct.Claimed || bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !acct.Active {
		respondError(w, http.StatusUnauthorized, "account is deactivated")
		return
	}

	ttl := h.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	claims := &middleware.Claims{
		AccountID: acct.ID.Hex(),
		FacultyID: acct.FacultyID,
		Role:      acct.Role,
		Email:     acct.Email,
		Name:      acct.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.JWTSecret))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not create token")
		return
	}
	respond(w, http.StatusOK, LoginResponse{
		Token: token,
		Account: AccountSummary{
			ID:        acct.ID.Hex(),
			FacultyID: acct.FacultyID,
			Name:      acct.Name,
			Email:     acct.Email,
			Role:      acct.Role,
		},
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword always answers 200 with the same message so callers cannot
// probe which emails are registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		respondError(w, http.StatusBadRequest, "email required")
		return
	}

	neutral := map[string]string{"message": "if that email is registered, a reset token has been sent"}

	acct, err := h.DB.AccountByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("forgot-password: lookup %s: %v", email, err)
		}
		respond(w, http.StatusOK, neutral)
		return
	}

	token, err := utils.NewResetToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not create reset token")
		return
	}
	expiry := time.Now().UTC().Add(resetTokenTTL)
	if err := h.DB.SetResetToken(r.Context(), acct.ID, utils.HashToken(token), expiry); err != nil {
		respondError(w, http.StatusInternalServerError, "could not create reset token")
		return
	}

	if h.Mailer != nil {
		// Delivery is fire-and-forget; the dialer enforces its own timeout.
		go func(to, name, token string) {
			if err := h.Mailer.SendPasswordReset(to, name, token); err != nil {
				log.Printf("forgot-password: send to %s: %v", to, err)
			}
		}(acct.Email, acct.Name, token)
	} else {
		log.Printf("forgot-password: SMTP not configured; token for %s: %s", acct.Email, token)
	}
	respond(w, http.StatusOK, neutral)
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword consumes a reset token. The lookup filters on the token's hash
// and its expiry; a consumed token never validates a second time.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "reset token required")
		return
	}
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	err = h.DB.ConsumeResetToken(r.Context(), utils.HashToken(token), string(hash), time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "invalid or expired reset token")
			return
		}
		respondError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "password updated"})
}
