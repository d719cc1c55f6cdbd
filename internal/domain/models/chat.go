// internal/domain/models/chat.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author kinds for chat messages.
const (
	AuthorUser         = "user"
	AuthorOrganization = "organization"
)

// MessageAuthor is a tagged reference to whoever wrote a message:
// exactly one kind, exactly one id. This replaces the looser
// two-optional-fields shape where both or neither could be set.
type MessageAuthor struct {
	Kind string             `bson:"kind" json:"kind"` // "user" | "organization"
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

// Message is one entry in a chat's append-only log. Immutable once
// appended; Timestamp is assigned by the server at append time.
type Message struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Author    MessageAuthor      `bson:"author" json:"author"`
	Text      string             `bson:"text" json:"text"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	File      string             `bson:"file,omitempty" json:"file,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Chat belongs to exactly one event and embeds its message log inline.
// Messages are only ever appended (atomic $push), never rewritten, so
// concurrent appends to the same chat cannot lose entries.
type Chat struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Event    primitive.ObjectID `bson:"event" json:"event"`
	Messages []Message          `bson:"messages" json:"messages"`
}
