package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type AdminHandler struct {
	DB *store.DB
}

type StatsResponse struct {
	FacultyCount    int64     `json:"facultyCount"`
	TotalBooks      int64     `json:"totalBooks"`
	AvailableBooks  int64     `json:"availableBooks"`
	IssuedBooks     int64     `json:"issuedBooks"`
	PendingFeedback int64     `json:"pendingFeedback"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Stats recomputes the dashboard numbers from the live store on every call.
// The five counts are independent and run concurrently.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var resp StatsResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		resp.FacultyCount, err = h.DB.FacultyCount(ctx)
		return
	})
	g.Go(func() (err error) {
		resp.TotalBooks, err = h.DB.BooksCount(ctx)
		return
	})
	g.Go(func() (err error) {
		resp.AvailableBooks, err = h.DB.BooksCountByStatus(ctx, models.StatusAvailable)
		return
	})
	g.Go(func() (err error) {
		resp.IssuedBooks, err = h.DB.BooksCountByStatus(ctx, models.StatusIssued)
		return
	})
	g.Go(func() (err error) {
		resp.PendingFeedback, err = h.DB.PendingFeedbackCount(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	resp.GeneratedAt = time.Now().UTC()
	respond(w, http.StatusOK, resp)
}

type ImportFacultyRequest struct {
	FacultyID   string `json:"facultyId"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

// ImportFaculty creates an unclaimed faculty record. The person registers
// later through signup, which sets email and password on this same document.
func (h *AdminHandler) ImportFaculty(w http.ResponseWriter, r *http.Request) {
	var req ImportFacultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.FacultyID = strings.TrimSpace(req.FacultyID)
	req.Name = strings.TrimSpace(req.Name)
	if req.FacultyID == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "facultyId and name required")
		return
	}
	now := time.Now().UTC()
	acct := &models.Account{
		FacultyID:   req.FacultyID,
		Name:        req.Name,
		Role:        models.RoleFaculty,
		Department:  strings.TrimSpace(req.Department),
		Designation: strings.TrimSpace(req.Designation),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := h.DB.CreateAccount(r.Context(), acct)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			respondError(w, http.StatusConflict, "facultyId already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to import faculty")
		return
	}
	acct.ID = id
	respond(w, http.StatusCreated, acct)
}

func (h *AdminHandler) ListFaculty(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.DB.ListFaculty(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list faculty")
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	respond(w, http.StatusOK, accounts)
}

// facultyIDParam parses {id} and verifies the account exists and is faculty.
func (h *AdminHandler) facultyIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid faculty id")
		return primitive.NilObjectID, false
	}
	acct, err := h.DB.AccountByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "faculty not found", "", "failed to load faculty")
		return primitive.NilObjectID, false
	}
	if acct.Role != models.RoleFaculty {
		respondError(w, http.StatusNotFound, "faculty not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

// guardNoBooksHeld refuses removal or deactivation while books are outstanding.
func (h *AdminHandler) guardNoBooksHeld(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	held, err := h.DB.BooksHeldCount(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to check issued books")
		return false
	}
	if held > 0 {
		respondError(w, http.StatusConflict, "faculty still has issued books")
		return false
	}
	return true
}

func (h *AdminHandler) DeleteFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.facultyIDParam(w, r)
	if !ok {
		return
	}
	if !h.guardNoBooksHeld(w, r, id) {
		return
	}
	if err := h.DB.DeleteAccount(r.Context(), id); err != nil {
		respondStoreError(w, err, "faculty not found", "", "failed to delete faculty")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeactivateFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.facultyIDParam(w, r)
	if !ok {
		return
	}
	if !h.guardNoBooksHeld(w, r, id) {
		return
	}
	if err := h.DB.SetActive(r.Context(), id, false); err != nil {
		respondStoreError(w, err, "faculty not found", "", "failed to deactivate faculty")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "faculty deactivated"})
}

func (h *AdminHandler) ActivateFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.facultyIDParam(w, r)
	if !ok {
		return
	}
	if err := h.DB.SetActive(r.Context(), id, true); err != nil {
		respondStoreError(w, err, "faculty not found", "", "failed to activate faculty")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "faculty activated"})
}

type WorkingHoursRequest struct {
	WeekdayOpen   string `json:"weekdayOpen"`
	WeekdayClose  string `json:"weekdayClose"`
	SaturdayOpen  string `json:"saturdayOpen"`
	SaturdayClose string `json:"saturdayClose"`
	SundayClosed  bool   `json:"sundayClosed"`
}

func (h *AdminHandler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	wh, err := h.DB.WorkingHours(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load working hours")
		return
	}
	if wh == nil {
		respondError(w, http.StatusNotFound, "working hours not configured")
		return
	}
	respond(w, http.StatusOK, wh)
}

func (h *AdminHandler) SetWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req WorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.WeekdayOpen == "" || req.WeekdayClose == "" {
		respondError(w, http.StatusBadRequest, "weekdayOpen and weekdayClose required")
		return
	}
	wh := &models.WorkingHours{
		WeekdayOpen:   req.WeekdayOpen,
		WeekdayClose:  req.WeekdayClose,
		SaturdayOpen:  req.SaturdayOpen,
		SaturdayClose: req.SaturdayClose,
		SundayClosed:  req.SundayClosed,
	}
	if err := h.DB.UpsertWorkingHours(r.Context(), wh); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save working hours")
		return
	}
	respond(w, http.StatusOK, wh)
}

type CreateHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
}

func (h *AdminHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.DB.ListHolidays(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list holidays")
		return
	}
	if holidays == nil {
		holidays = []models.Holiday{}
	}
	respond(w, http.StatusOK, holidays)
}

func (h *AdminHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Date == "" {
		respondError(w, http.StatusBadRequest, "name and date required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	holiday := &models.Holiday{
		Name:      req.Name,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	id, err := h.DB.InsertHoliday(r.Context(), holiday)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create holiday")
		return
	}
	holiday.ID = id
	respond(w, http.StatusCreated, holiday)
}

func (h *AdminHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid holiday id")
		return
	}
	if err := h.DB.DeleteHoliday(r.Context(), id); err != nil {
		respondStoreError(w, err, "holiday not found", "", "failed to delete holiday")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
