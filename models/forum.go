package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ForumReply struct {
	FacultyID  string    `bson:"facultyId" json:"facultyId"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	Content    string    `bson:"content" json:"content"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ForumPost embeds its replies; posts and replies are append-only.
type ForumPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacultyID  string             `bson:"facultyId" json:"facultyId"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Replies    []ForumReply       `bson:"replies" json:"replies"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
