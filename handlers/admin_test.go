package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportFacultyRejectsMissingFields(t *testing.T) {
	h := &AdminHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/faculty", strings.NewReader(`{"facultyId":"CS-042"}`))
	w := httptest.NewRecorder()
	h.ImportFaculty(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "facultyId and name required")
}

func TestCreateHolidayRejectsBadDate(t *testing.T) {
	h := &AdminHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/settings/holidays",
		strings.NewReader(`{"name":"Founders Day","date":"15-08-2026"}`))
	w := httptest.NewRecorder()
	h.CreateHoliday(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestSetWorkingHoursRejectsMissingFields(t *testing.T) {
	h := &AdminHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/settings/working-hours",
		strings.NewReader(`{"weekdayOpen":"09:00"}`))
	w := httptest.NewRecorder()
	h.SetWorkingHours(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteHolidayRejectsInvalidID(t *testing.T) {
	h := &AdminHandler{}
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/settings/holidays/zzz", nil)
	w := httptest.NewRecorder()
	h.DeleteHoliday(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
