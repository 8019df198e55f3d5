package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback categories.
const (
	FeedbackLibrary        = "Library"
	FeedbackInfrastructure = "Infrastructure"
	FeedbackTechnical      = "Technical"
	FeedbackOther          = "Other"
)

var ValidFeedbackCategories = []string{FeedbackLibrary, FeedbackInfrastructure, FeedbackTechnical, FeedbackOther}

// Feedback statuses.
const (
	FeedbackPending  = "Pending"
	FeedbackReviewed = "Reviewed"
	FeedbackResolved = "Resolved"
)

var ValidFeedbackStatuses = []string{FeedbackPending, FeedbackReviewed, FeedbackResolved}

type Feedback struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacultyID     string             `bson:"facultyId" json:"facultyId"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Status        string             `bson:"status" json:"status"`
	AdminResponse string             `bson:"adminResponse,omitempty" json:"adminResponse,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
