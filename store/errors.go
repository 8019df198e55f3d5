package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches the query.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write's state precondition did not hold.
	ErrConflict = errors.New("conflict")
	// ErrCounterFloor is returned when a decrement would take booksIssued below zero.
	ErrCounterFloor = errors.New("issued counter already at zero")
)

// IsDup reports whether err is a mongo duplicate-key error.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
