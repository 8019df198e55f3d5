package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Holiday struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// WorkingHours is a single upserted settings document.
type WorkingHours struct {
	WeekdayOpen   string    `bson:"weekdayOpen" json:"weekdayOpen"`
	WeekdayClose  string    `bson:"weekdayClose" json:"weekdayClose"`
	SaturdayOpen  string    `bson:"saturdayOpen,omitempty" json:"saturdayOpen,omitempty"`
	SaturdayClose string    `bson:"saturdayClose,omitempty" json:"saturdayClose,omitempty"`
	SundayClosed  bool      `bson:"sundayClosed" json:"sundayClosed"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
