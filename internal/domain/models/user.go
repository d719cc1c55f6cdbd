// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a volunteer account. Email is unique (index on email_ci).
//
// NOTE:
//   - Volunteer state is not embedded on User. An Event's
//     req_volunteers / accepted_volunteers arrays are authoritative.
//   - Deleting a user leaves dangling references in those arrays and
//     in chat message authors; readers resolve what they can and show
//     the rest as unknown.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash" json:"-"`

	InterestedFields []string `bson:"interested_fields,omitempty" json:"interestedFields,omitempty"`
	Resume           string   `bson:"resume,omitempty" json:"resume,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
