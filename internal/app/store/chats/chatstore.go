// internal/app/store/chats/chatstore.go
package chatstore

import (
	"context"
	"errors"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrChatNotFound = errors.New("chat not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chats")}
}

// Create inserts an empty chat bound to the given event.
func (s *Store) Create(ctx context.Context, eventID primitive.ObjectID) (models.Chat, error) {
	chat := models.Chat{
		ID:       primitive.NewObjectID(),
		Event:    eventID,
		Messages: []models.Message{},
	}
	_, err := s.c.InsertOne(ctx, chat)
	if err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Chat, error) {
	var chat models.Chat
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

// GetByEvent looks up the chat bound to an event.
func (s *Store) GetByEvent(ctx context.Context, eventID primitive.ObjectID) (models.Chat, error) {
	var chat models.Chat
	err := s.c.FindOne(ctx, bson.M{"event": eventID}).Decode(&chat)
	if err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

// AppendMessage assigns the message an id and server timestamp, then
// appends it with an atomic $push. Concurrent appends to the same chat
// interleave without losing entries; the log is never rewritten whole.
// Returns the message as stored and the updated chat.
func (s *Store) AppendMessage(ctx context.Context, chatID primitive.ObjectID, msg models.Message) (models.Message, models.Chat, error) {
	msg.ID = primitive.NewObjectID()
	msg.Timestamp = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var chat models.Chat
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": chatID},
		bson.M{"$push": bson.M{"messages": msg}},
		opts,
	).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Message{}, models.Chat{}, ErrChatNotFound
		}
		return models.Message{}, models.Chat{}, err
	}
	return msg, chat, nil
}

// Delete removes a chat by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByEvent removes the chat bound to an event. Used when the
// event itself is deleted or when compensating a failed event create.
func (s *Store) DeleteByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"event": eventID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
