package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/deptlibrary/backend/models"
	"github.com/deptlibrary/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Circulation failure modes, mapped to HTTP statuses by the handlers.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is deactivated")
	ErrBookNotFound      = errors.New("book not found")
	ErrBookAlreadyIssued = errors.New("book is already issued")
	ErrBookNotIssued     = errors.New("book is not issued")
	ErrNotHolder         = errors.New("book is issued to another account")
)

// CirculationStore is the slice of the store circulation needs. *store.DB
// implements it; tests substitute an in-memory mock.
type CirculationStore interface {
	AccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	ClaimBook(ctx context.Context, bookID, accountID primitive.ObjectID, when time.Time) (*models.Book, error)
	ReleaseBook(ctx context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error)
	RevertClaim(ctx context.Context, bookID primitive.ObjectID) error
	RevertRelease(ctx context.Context, bookID, accountID primitive.ObjectID, issuedDate time.Time) error
	AdjustBooksIssued(ctx context.Context, accountID primitive.ObjectID, delta int) error
	BooksHeldBy(ctx context.Context, accountID primitive.ObjectID) ([]models.Book, error)
}

type Circulation struct {
	Store CirculationStore
}

// Issue marks the book as issued to the account. The account is validated before
// the book is touched, so a missing account never strands a book in issued state.
// The status flip is a compare-and-set; of two concurrent issues exactly one wins.
func (c *Circulation) Issue(ctx context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error) {
	acct, err := c.Store.AccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if !acct.Active {
		return nil, ErrAccountInactive
	}

	book, err := c.Store.ClaimBook(ctx, bookID, accountID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		// CAS missed: the book is gone or someone else holds it.
		if _, lookErr := c.Store.BookByID(ctx, bookID); lookErr != nil {
			if errors.Is(lookErr, store.ErrNotFound) {
				return nil, ErrBookNotFound
			}
			return nil, lookErr
		}
		return nil, ErrBookAlreadyIssued
	}

	if err := c.Store.AdjustBooksIssued(ctx, accountID, 1); err != nil {
		if revertErr := c.Store.RevertClaim(ctx, bookID); revertErr != nil {
			log.Printf("circulation: revert claim of book %s after counter failure: %v", bookID.Hex(), revertErr)
		}
		return nil, err
	}
	return book, nil
}

// Return gives the book back. Only the current holder's request matches the
// release filter; a return of an available book alters nothing.
func (c *Circulation) Return(ctx context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error) {
	if _, err := c.Store.AccountByID(ctx, accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	book, err := c.Store.ReleaseBook(ctx, bookID, accountID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		cur, lookErr := c.Store.BookByID(ctx, bookID)
		if lookErr != nil {
			if errors.Is(lookErr, store.ErrNotFound) {
				return nil, ErrBookNotFound
			}
			return nil, lookErr
		}
		if cur.Status == models.StatusAvailable {
			return nil, ErrBookNotIssued
		}
		return nil, ErrNotHolder
	}

	if err := c.Store.AdjustBooksIssued(ctx, accountID, -1); err != nil {
		if errors.Is(err, store.ErrCounterFloor) {
			// Counter already at zero means a pre-existing inconsistency; the
			// physical return stands, the counter is clamped, not driven negative.
			log.Printf("circulation: booksIssued floor hit for account %s on return of %s", accountID.Hex(), bookID.Hex())
			return book, nil
		}
		issuedDate := time.Now().UTC()
		if book.IssuedDate != nil {
			issuedDate = *book.IssuedDate
		}
		if revertErr := c.Store.RevertRelease(ctx, bookID, accountID, issuedDate); revertErr != nil {
			log.Printf("circulation: revert release of book %s after counter failure: %v", bookID.Hex(), revertErr)
		}
		return nil, err
	}
	return book, nil
}

// Dashboard holds the faculty dashboard payload: the stored counter and the
// live query of currently held books.
type Dashboard struct {
	BooksIssued          int           `json:"booksIssued"`
	CurrentlyIssuedBooks []models.Book `json:"currentlyIssuedBooks"`
}

func (c *Circulation) Dashboard(ctx context.Context, accountID primitive.ObjectID) (*Dashboard, error) {
	acct, err := c.Store.AccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	books, err := c.Store.BooksHeldBy(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Book{}
	}
	return &Dashboard{BooksIssued: acct.BooksIssued, CurrentlyIssuedBooks: books}, nil
}
