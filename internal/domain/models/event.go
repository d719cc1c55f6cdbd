// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is posted by an organization and carries the volunteer
// workflow state plus a reference to its chat.
//
// Invariant: a user id appears in at most one of req_volunteers and
// accepted_volunteers. The event store enforces this with conditional
// updates; nothing else writes these arrays.
type Event struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Date         time.Time          `bson:"date" json:"date"`
	Organization primitive.ObjectID `bson:"organization" json:"organization"`
	Location     string             `bson:"location" json:"location"`
	City         string             `bson:"city" json:"city"`
	Coordinators []Coordinator      `bson:"coordinators,omitempty" json:"coordinators,omitempty"`

	// ReqVolunteers holds users who asked to volunteer and are waiting
	// on a decision; AcceptedVolunteers are the only users authorized
	// to post in the event's chat.
	ReqVolunteers      []primitive.ObjectID `bson:"req_volunteers" json:"req_volunteers"`
	AcceptedVolunteers []primitive.ObjectID `bson:"accepted_volunteers" json:"accepted_volunteers"`

	// Chat is created together with the event (1:1) and deleted with it.
	Chat primitive.ObjectID `bson:"chat,omitempty" json:"chat"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasAccepted reports whether userID is in the accepted volunteer set.
func (e *Event) HasAccepted(userID primitive.ObjectID) bool {
	for _, id := range e.AcceptedVolunteers {
		if id == userID {
			return true
		}
	}
	return false
}

// HasRequested reports whether userID is in the requested volunteer set.
func (e *Event) HasRequested(userID primitive.ObjectID) bool {
	for _, id := range e.ReqVolunteers {
		if id == userID {
			return true
		}
	}
	return false
}
