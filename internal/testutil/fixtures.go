package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name
// and email. Returns the created organization with its generated ID.
func (f *Fixtures) CreateOrganization(ctx context.Context, name, email string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Description:  "Test organization",
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: "$2a$12$unusable.test.hash",
		Events:       []primitive.ObjectID{},
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("organizations").InsertOne(ctx, org)
	if err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}

	return org
}

// CreateUser creates a test volunteer account.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: "$2a$12$unusable.test.hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateEvent creates a test event owned by orgID. Volunteers listed in
// accepted are placed directly in the accepted set.
func (f *Fixtures) CreateEvent(ctx context.Context, name string, orgID primitive.ObjectID, accepted ...primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	if accepted == nil {
		accepted = []primitive.ObjectID{}
	}
	event := models.Event{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		Description:        "Test event",
		Date:               now.Add(48 * time.Hour),
		Organization:       orgID,
		Location:           "Test Hall",
		City:               "Test City",
		ReqVolunteers:      []primitive.ObjectID{},
		AcceptedVolunteers: accepted,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := f.db.Collection("events").InsertOne(ctx, event)
	if err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	return event
}

// CreateChat creates an empty chat bound to eventID and links it on
// the event document.
func (f *Fixtures) CreateChat(ctx context.Context, eventID primitive.ObjectID) models.Chat {
	f.t.Helper()

	chat := models.Chat{
		ID:       primitive.NewObjectID(),
		Event:    eventID,
		Messages: []models.Message{},
	}

	_, err := f.db.Collection("chats").InsertOne(ctx, chat)
	if err != nil {
		f.t.Fatalf("failed to create test chat: %v", err)
	}

	_, err = f.db.Collection("events").UpdateByID(ctx, eventID,
		bson.M{"$set": bson.M{"chat": chat.ID}})
	if err != nil {
		f.t.Fatalf("failed to link test chat to event: %v", err)
	}

	return chat
}
