// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coordinator is a named contact person embedded in an Organization or
// Event record. It has no independent identity or collection.
type Coordinator struct {
	Name       string `bson:"name" json:"name"`
	Number     string `bson:"number" json:"number"`
	Title      string `bson:"title,omitempty" json:"title,omitempty"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
}

// Organization posts events and owns their chats. Email is unique
// (enforced by index on email_ci).
//
// Events holds references to the organization's events. Deleting an
// organization does not cascade to its events, so dangling references
// are possible; callers that resolve event→organization must tolerate
// a missing document.
type Organization struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash" json:"-"`

	Logo                    string        `bson:"logo,omitempty" json:"logo,omitempty"`
	ContactNumber           string        `bson:"contact_number,omitempty" json:"contactNumber,omitempty"`
	Website                 string        `bson:"website,omitempty" json:"website,omitempty"`
	BannerImage             string        `bson:"banner_image,omitempty" json:"bannerImage,omitempty"`
	LocationAlternateNumber string        `bson:"location_alternate_number,omitempty" json:"locationAlternateNumber,omitempty"`
	AlternateEmail          string        `bson:"alternate_email,omitempty" json:"alternateEmail,omitempty"`
	Coordinators            []Coordinator `bson:"coordinators,omitempty" json:"coordinators,omitempty"`

	Events []primitive.ObjectID `bson:"events" json:"events"`
	Status string               `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
