// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("an organization with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.EmailCI = text.Fold(org.Email)
	if org.Events == nil {
		org.Events = []primitive.ObjectID{}
	}
	if org.Status == "" {
		org.Status = "active"
	}
	org.CreatedAt = now
	org.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, org)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateEmail
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetByEmail looks up an organization by case-insensitive email.
// Used for login.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&org)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetByIDs loads multiple organizations by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// List returns all organizations. Password hashes are projected out so
// listings can be returned to clients as-is.
func (s *Store) List(ctx context.Context) ([]models.Organization, error) {
	opts := options.Find().SetProjection(bson.M{"password_hash": 0})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update modifies an organization's mutable profile fields and
// refreshes UpdatedAt. Credentials and the events array have their own
// operations and are never touched here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, org models.Organization) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if org.Name != "" {
		set["name"] = org.Name
	}
	if org.Description != "" {
		set["description"] = org.Description
	}
	if org.Email != "" {
		set["email"] = org.Email
		set["email_ci"] = text.Fold(org.Email)
	}
	if org.Logo != "" {
		set["logo"] = org.Logo
	}
	if org.ContactNumber != "" {
		set["contact_number"] = org.ContactNumber
	}
	if org.Website != "" {
		set["website"] = org.Website
	}
	if org.BannerImage != "" {
		set["banner_image"] = org.BannerImage
	}
	if org.LocationAlternateNumber != "" {
		set["location_alternate_number"] = org.LocationAlternateNumber
	}
	if org.AlternateEmail != "" {
		set["alternate_email"] = org.AlternateEmail
	}
	if org.Coordinators != nil {
		set["coordinators"] = org.Coordinators
	}
	if org.Status != "" {
		set["status"] = org.Status
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Delete removes an organization by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PushEvent appends an event reference to the organization's events
// array. $addToSet keeps the array duplicate-free under retries.
func (s *Store) PushEvent(ctx context.Context, orgID, eventID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, orgID, bson.M{
		"$addToSet": bson.M{"events": eventID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullEvent removes an event reference from the organization's events
// array.
func (s *Store) PullEvent(ctx context.Context, orgID, eventID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, orgID, bson.M{
		"$pull": bson.M{"events": eventID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// ExistsByEmailCI checks if an organization with the given case-insensitive email exists.
func (s *Store) ExistsByEmailCI(ctx context.Context, emailCI string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email_ci": emailCI}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of organizations matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
