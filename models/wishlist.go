package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is a faculty request for a title the library does not hold.
type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacultyID string             `bson:"facultyId" json:"facultyId"`
	Title     string             `bson:"title" json:"title"`
	Author    string             `bson:"author,omitempty" json:"author,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
