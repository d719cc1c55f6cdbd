// internal/app/store/events/eventstore.go
package eventstore

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

var (
	ErrEventNotFound = errors.New("event not found")

	// ErrAlreadyRequested covers both pending and accepted membership:
	// a user in either array cannot request again.
	ErrAlreadyRequested = errors.New("user has already requested or been accepted for this event")

	// ErrNotRequested means the user is not in the pending set, so
	// there is nothing to accept.
	ErrNotRequested = errors.New("user has not requested to volunteer for this event")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

func (s *Store) Create(ctx context.Context, event models.Event) (models.Event, error) {
	now := time.Now().UTC()
	event.ID = primitive.NewObjectID()
	if event.ReqVolunteers == nil {
		event.ReqVolunteers = []primitive.ObjectID{}
	}
	if event.AcceptedVolunteers == nil {
		event.AcceptedVolunteers = []primitive.ObjectID{}
	}
	event.CreatedAt = now
	event.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, event)
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var event models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// listProjection keeps workflow internals out of listings. Full
// documents come from GetByID only.
var listProjection = bson.M{
	"req_volunteers":      0,
	"accepted_volunteers": 0,
	"chat":                0,
}

// List returns all events with volunteer rosters and chat references
// projected out.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetProjection(listProjection)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListByOrganization returns an organization's events with the same
// projection as List. Rosters come from GetByID.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Event, error) {
	opts := options.Find().SetProjection(listProjection)
	cur, err := s.c.Find(ctx, bson.M{"organization": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update modifies an event's descriptive fields and refreshes
// UpdatedAt. Volunteer arrays and the chat reference have dedicated
// operations and are never written here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, event models.Event) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if event.Name != "" {
		set["name"] = event.Name
	}
	if event.Description != "" {
		set["description"] = event.Description
	}
	if !event.Date.IsZero() {
		set["date"] = event.Date
	}
	if event.Location != "" {
		set["location"] = event.Location
	}
	if event.City != "" {
		set["city"] = event.City
	}
	if event.Coordinators != nil {
		set["coordinators"] = event.Coordinators
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AttachChat links the event's chat document. Set once at creation
// time, immediately after the chat is inserted.
func (s *Store) AttachChat(ctx context.Context, eventID, chatID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, eventID, bson.M{
		"$set": bson.M{"chat": chatID, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// RequestVolunteer adds userID to the pending set. The filter rejects
// users already present in either array, so the write and the
// membership check are a single atomic operation; concurrent duplicate
// requests cannot both succeed.
func (s *Store) RequestVolunteer(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":                 eventID,
			"req_volunteers":      bson.M{"$ne": userID},
			"accepted_volunteers": bson.M{"$ne": userID},
		},
		bson.M{
			"$addToSet": bson.M{"req_volunteers": userID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the event is gone or the user is already in a set.
		if exists, err := s.exists(ctx, eventID); err != nil {
			return err
		} else if !exists {
			return ErrEventNotFound
		}
		return ErrAlreadyRequested
	}
	return nil
}

// AcceptVolunteer moves userID from the pending set to the accepted
// set in one conditional update. The filter requires the user to be
// pending, so accepting twice (or accepting someone who never asked)
// matches nothing.
func (s *Store) AcceptVolunteer(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":            eventID,
			"req_volunteers": userID,
		},
		bson.M{
			"$pull":     bson.M{"req_volunteers": userID},
			"$addToSet": bson.M{"accepted_volunteers": userID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if exists, err := s.exists(ctx, eventID); err != nil {
			return err
		} else if !exists {
			return ErrEventNotFound
		}
		return ErrNotRequested
	}
	return nil
}

func (s *Store) exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of events matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
