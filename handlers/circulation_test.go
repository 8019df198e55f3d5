package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deptlibrary/backend/middleware"
	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/service"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "handler-test-secret"

type circulationServiceMock struct {
	issueResp  *models.Book
	issueErr   error
	returnResp *models.Book
	returnErr  error
	dashResp   *service.Dashboard
	dashErr    error

	lastBookID    primitive.ObjectID
	lastAccountID primitive.ObjectID
}

func (m *circulationServiceMock) Issue(_ context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error) {
	m.lastBookID, m.lastAccountID = bookID, accountID
	return m.issueResp, m.issueErr
}

func (m *circulationServiceMock) Return(_ context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error) {
	m.lastBookID, m.lastAccountID = bookID, accountID
	return m.returnResp, m.returnErr
}

func (m *circulationServiceMock) Dashboard(_ context.Context, accountID primitive.ObjectID) (*service.Dashboard, error) {
	m.lastAccountID = accountID
	return m.dashResp, m.dashErr
}

func facultyToken(t *testing.T, accountID primitive.ObjectID) string {
	t.Helper()
	claims := &middleware.Claims{
		AccountID: accountID.Hex(),
		FacultyID: "CS-042",
		Role:      models.RoleFaculty,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func circulationRouter(mock *circulationServiceMock) http.Handler {
	h := &CirculationHandler{Service: mock}
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(testSecret))
		r.Get("/api/faculty/dashboard", h.Dashboard)
		r.Put("/api/faculty/books/issue/{id}", h.Issue)
		r.Put("/api/faculty/books/return/{id}", h.Return)
	})
	return r
}

func TestIssueEndpoint(t *testing.T) {
	accountID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	mock := &circulationServiceMock{
		issueResp: &models.Book{ID: bookID, Status: models.StatusIssued, IssuedTo: &accountID},
	}
	router := circulationRouter(mock)

	req := httptest.NewRequest(http.MethodPut, "/api/faculty/books/issue/"+bookID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+facultyToken(t, accountID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, bookID, mock.lastBookID)
	assert.Equal(t, accountID, mock.lastAccountID)
	assert.Contains(t, w.Body.String(), `"status":"issued"`)
}

func TestIssueEndpointConflict(t *testing.T) {
	mock := &circulationServiceMock{issueErr: service.ErrBookAlreadyIssued}
	router := circulationRouter(mock)

	req := httptest.NewRequest(http.MethodPut, "/api/faculty/books/issue/"+primitive.NewObjectID().Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+facultyToken(t, primitive.NewObjectID()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already issued")
}

func TestIssueEndpointBookNotFound(t *testing.T) {
	mock := &circulationServiceMock{issueErr: service.ErrBookNotFound}
	router := circulationRouter(mock)

	req := httptest.NewRequest(http.MethodPut, "/api/faculty/books/issue/"+primitive.NewObjectID().Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+facultyToken(t, primitive.NewObjectID()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueEndpointInvalidID(t *testing.T) {
	router := circulationRouter(&circulationServiceMock{})

	req := httptest.NewRequest(http.MethodPut, "/api/faculty/books/issue/not-an-id", nil)
	req.Header.Set("Authorization", "Bearer "+facultyToken(t, primitive.NewObjectID()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueEndpointRequiresToken(t *testing.T) {
	router := circulationRouter(&circulationServiceMock{})

	req := httptest.NewRequest(http.MethodPut, "/api/faculty/books/issue/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReturnEndpointNotIssued(t *testing.T) {
	mock := &circulationServiceMock{returnErr: service.ErrBookNotIssued}
	router := circulationRouter(mock)

	req := httptest.NewRequest(http.MethodPut, "/api/faculty/books/return/"+primitive.NewObjectID().Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+facultyToken(t, primitive.NewObjectID()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	accountID := primitive.NewObjectID()
	mock := &circulationServiceMock{
		dashResp: &service.Dashboard{
			BooksIssued:          2,
			CurrentlyIssuedBooks: []models.Book{{Title: "Algorithms"}, {Title: "Compilers"}},
		},
	}
	router := circulationRouter(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/faculty/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+facultyToken(t, accountID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, accountID, mock.lastAccountID)
	assert.Contains(t, w.Body.String(), `"booksIssued":2`)
	assert.Contains(t, w.Body.String(), "Algorithms")
}
