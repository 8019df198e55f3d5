package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role constants for account authorization.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
)

var ValidRoles = []string{RoleAdmin, RoleFaculty}

// Account is the single source of truth for a person in the system. Records are
// created by an admin import (unclaimed, no credentials) and claimed at signup,
// which sets email and password. The list of currently issued books is not stored
// here; it is the set of Book documents whose issuedTo points at this account.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacultyID    string             `bson:"facultyId" json:"facultyId"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Password     string             `bson:"password,omitempty" json:"-"` // bcrypt hash; empty until claimed
	Mobile       string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Department   string             `bson:"department,omitempty" json:"department,omitempty"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"` // storage key
	BooksIssued  int                `bson:"booksIssued" json:"booksIssued"`
	Active       bool               `bson:"active" json:"active"`
	Claimed      bool               `bson:"claimed" json:"claimed"`

	ResetTokenHash   string     `bson:"resetTokenHash,omitempty" json:"-"`
	ResetTokenExpiry *time.Time `bson:"resetTokenExpiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
