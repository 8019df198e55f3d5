package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockCircStore reproduces the store's compare-and-set semantics in memory so
// circulation ordering and compensation can be exercised without mongo.
type mockCircStore struct {
	mu       sync.Mutex
	accounts map[primitive.ObjectID]*models.Account
	books    map[primitive.ObjectID]*models.Book

	failAdjust   error
	revertClaims int
}

func newMockCircStore() *mockCircStore {
	return &mockCircStore{
		accounts: make(map[primitive.ObjectID]*models.Account),
		books:    make(map[primitive.ObjectID]*models.Book),
	}
}

func (m *mockCircStore) addAccount(active bool) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	m.accounts[id] = &models.Account{ID: id, FacultyID: "F-" + id.Hex()[:6], Active: active, Claimed: true}
	return id
}

func (m *mockCircStore) addBook() primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	m.books[id] = &models.Book{ID: id, BookID: "B-" + id.Hex()[:6], Title: "t", Author: "a", Status: models.StatusAvailable}
	return id
}

func (m *mockCircStore) AccountByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockCircStore) BookByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockCircStore) ClaimBook(_ context.Context, bookID, accountID primitive.ObjectID, when time.Time) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[bookID]
	if !ok || b.Status != models.StatusAvailable {
		return nil, store.ErrNotFound
	}
	b.Status = models.StatusIssued
	b.IssuedTo = &accountID
	b.IssuedDate = &when
	cp := *b
	return &cp, nil
}

func (m *mockCircStore) ReleaseBook(_ context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[bookID]
	if !ok || b.Status != models.StatusIssued || b.IssuedTo == nil || *b.IssuedTo != accountID {
		return nil, store.ErrNotFound
	}
	b.Status = models.StatusAvailable
	b.IssuedTo = nil
	b.IssuedDate = nil
	cp := *b
	return &cp, nil
}

func (m *mockCircStore) RevertClaim(_ context.Context, bookID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revertClaims++
	b, ok := m.books[bookID]
	if ok && b.Status == models.StatusIssued {
		b.Status = models.StatusAvailable
		b.IssuedTo = nil
		b.IssuedDate = nil
	}
	return nil
}

func (m *mockCircStore) RevertRelease(_ context.Context, bookID, accountID primitive.ObjectID, issuedDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[bookID]
	if ok && b.Status == models.StatusAvailable {
		b.Status = models.StatusIssued
		b.IssuedTo = &accountID
		b.IssuedDate = &issuedDate
	}
	return nil
}

func (m *mockCircStore) AdjustBooksIssued(_ context.Context, accountID primitive.ObjectID, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdjust != nil {
		return m.failAdjust
	}
	a, ok := m.accounts[accountID]
	if !ok {
		return store.ErrNotFound
	}
	if delta < 0 && a.BooksIssued < -delta {
		return store.ErrCounterFloor
	}
	a.BooksIssued += delta
	return nil
}

func (m *mockCircStore) BooksHeldBy(_ context.Context, accountID primitive.ObjectID) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var held []models.Book
	for _, b := range m.books {
		if b.IssuedTo != nil && *b.IssuedTo == accountID {
			held = append(held, *b)
		}
	}
	return held, nil
}

func (m *mockCircStore) book(id primitive.ObjectID) models.Book {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.books[id]
}

func (m *mockCircStore) account(id primitive.ObjectID) models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.accounts[id]
}

func TestIssueAndReturnRoundTrip(t *testing.T) {
	st := newMockCircStore()
	acctID := st.addAccount(true)
	bookID := st.addBook()
	c := &Circulation{Store: st}

	issued, err := c.Issue(context.Background(), bookID, acctID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIssued, issued.Status)
	require.NotNil(t, issued.IssuedTo)
	assert.Equal(t, acctID, *issued.IssuedTo)
	assert.NotNil(t, issued.IssuedDate)
	assert.Equal(t, 1, st.account(acctID).BooksIssued)

	dash, err := c.Dashboard(context.Background(), acctID)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.BooksIssued)
	require.Len(t, dash.CurrentlyIssuedBooks, 1)
	assert.Equal(t, bookID, dash.CurrentlyIssuedBooks[0].ID)

	returned, err := c.Return(context.Background(), bookID, acctID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, returned.Status)
	assert.Nil(t, returned.IssuedTo)
	assert.Nil(t, returned.IssuedDate)
	assert.Equal(t, 0, st.account(acctID).BooksIssued)

	dash, err = c.Dashboard(context.Background(), acctID)
	require.NoError(t, err)
	assert.Equal(t, 0, dash.BooksIssued)
	assert.Empty(t, dash.CurrentlyIssuedBooks)
}

func TestIssueAlreadyIssued(t *testing.T) {
	st := newMockCircStore()
	first := st.addAccount(true)
	second := st.addAccount(true)
	bookID := st.addBook()
	c := &Circulation{Store: st}

	_, err := c.Issue(context.Background(), bookID, first)
	require.NoError(t, err)

	_, err = c.Issue(context.Background(), bookID, second)
	assert.ErrorIs(t, err, ErrBookAlreadyIssued)

	book := st.book(bookID)
	require.NotNil(t, book.IssuedTo)
	assert.Equal(t, first, *book.IssuedTo)
	assert.Equal(t, 1, st.account(first).BooksIssued)
	assert.Equal(t, 0, st.account(second).BooksIssued)
}

func TestIssueBookNotFound(t *testing.T) {
	st := newMockCircStore()
	acctID := st.addAccount(true)
	c := &Circulation{Store: st}

	_, err := c.Issue(context.Background(), primitive.NewObjectID(), acctID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestIssueAccountNotFoundLeavesBookUntouched(t *testing.T) {
	st := newMockCircStore()
	bookID := st.addBook()
	c := &Circulation{Store: st}

	_, err := c.Issue(context.Background(), bookID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrAccountNotFound)

	book := st.book(bookID)
	assert.Equal(t, models.StatusAvailable, book.Status)
	assert.Nil(t, book.IssuedTo)
	assert.Nil(t, book.IssuedDate)
}

func TestIssueInactiveAccount(t *testing.T) {
	st := newMockCircStore()
	acctID := st.addAccount(false)
	bookID := st.addBook()
	c := &Circulation{Store: st}

	_, err := c.Issue(context.Background(), bookID, acctID)
	assert.ErrorIs(t, err, ErrAccountInactive)
	assert.Equal(t, models.StatusAvailable, st.book(bookID).Status)
}

func TestIssueCounterFailureRevertsClaim(t *testing.T) {
	st := newMockCircStore()
	acctID := st.addAccount(true)
	bookID := st.addBook()
	st.failAdjust = errors.New("write concern timeout")
	c := &Circulation{Store: st}

	_, err := c.Issue(context.Background(), bookID, acctID)
	require.Error(t, err)
	assert.Equal(t, 1, st.revertClaims)
	book := st.book(bookID)
	assert.Equal(t, models.StatusAvailable, book.Status)
	assert.Nil(t, book.IssuedTo)
}

func TestReturnOfAvailableBookAltersNothing(t *testing.T) {
	st := newMockCircStore()
	acctID := st.addAccount(true)
	bookID := st.addBook()
	c := &Circulation{Store: st}

	_, err := c.Return(context.Background(), bookID, acctID)
	assert.ErrorIs(t, err, ErrBookNotIssued)
	assert.Equal(t, 0, st.account(acctID).BooksIssued)
	assert.Equal(t, models.StatusAvailable, st.book(bookID).Status)
}

func TestReturnByNonHolder(t *testing.T) {
	st := newMockCircStore()
	holder := st.addAccount(true)
	stranger := st.addAccount(true)
	bookID := st.addBook()
	c := &Circulation{Store: st}

	_, err := c.Issue(context.Background(), bookID, holder)
	require.NoError(t, err)

	_, err = c.Return(context.Background(), bookID, stranger)
	assert.ErrorIs(t, err, ErrNotHolder)

	book := st.book(bookID)
	assert.Equal(t, models.StatusIssued, book.Status)
	require.NotNil(t, book.IssuedTo)
	assert.Equal(t, holder, *book.IssuedTo)
	assert.Equal(t, 1, st.account(holder).BooksIssued)
}

func TestReturnClampsCounterAtZero(t *testing.T) {
	st := newMockCircStore()
	acctID := st.addAccount(true)
	bookID := st.addBook()
	c := &Circulation{Store: st}

	// Force the inconsistent starting point: book issued, counter zero.
	_, err := st.ClaimBook(context.Background(), bookID, acctID, time.Now())
	require.NoError(t, err)

	returned, err := c.Return(context.Background(), bookID, acctID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, returned.Status)
	assert.Equal(t, 0, st.account(acctID).BooksIssued)
}

func TestConcurrentIssueAdmitsExactlyOne(t *testing.T) {
	st := newMockCircStore()
	bookID := st.addBook()
	c := &Circulation{Store: st}

	const workers = 8
	accounts := make([]primitive.ObjectID, workers)
	for i := range accounts {
		accounts[i] = st.addAccount(true)
	}

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Issue(context.Background(), bookID, accounts[i])
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	var winner int
	for i, err := range errs {
		switch {
		case err == nil:
			successes++
			winner = i
		case errors.Is(err, ErrBookAlreadyIssued):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	book := st.book(bookID)
	require.NotNil(t, book.IssuedTo)
	assert.Equal(t, accounts[winner], *book.IssuedTo)
	assert.Equal(t, 1, st.account(accounts[winner]).BooksIssued)
}

func TestDashboardAccountNotFound(t *testing.T) {
	c := &Circulation{Store: newMockCircStore()}
	_, err := c.Dashboard(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
