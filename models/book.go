package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book status values.
const (
	StatusAvailable = "available"
	StatusIssued    = "issued"
)

// Book is a single physical copy. Status, IssuedTo and IssuedDate always change
// together in one document write: status == issued exactly when the other two are set.
type Book struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BookID       string              `bson:"bookId" json:"bookId"` // accession number assigned by the library
	Title        string              `bson:"title" json:"title"`
	Author       string              `bson:"author" json:"author"`
	Category     string              `bson:"category,omitempty" json:"category,omitempty"`
	Publisher    string              `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Source       string              `bson:"source,omitempty" json:"source,omitempty"`
	PlaceLocated string              `bson:"placeLocated,omitempty" json:"placeLocated,omitempty"`
	Status       string              `bson:"status" json:"status"`
	IssuedTo     *primitive.ObjectID `bson:"issuedTo,omitempty" json:"issuedTo,omitempty"`
	IssuedDate   *time.Time          `bson:"issuedDate,omitempty" json:"issuedDate,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
