package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Broadcast priorities.
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

var ValidPriorities = []string{PriorityNormal, PriorityUrgent}

// Broadcast is an admin announcement. Documents are removed by the store's TTL
// index once ExpiresAt passes; there is no update operation.
type Broadcast struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Content        string             `bson:"content" json:"content"`
	Priority       string             `bson:"priority" json:"priority"`
	ExpiresInHours int                `bson:"expiresInHours" json:"expiresInHours"`
	ExpiresAt      time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
