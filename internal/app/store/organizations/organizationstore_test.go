package organizationstore_test

import (
	"testing"

	organizationstore "github.com/volunteerhub/volunteerhub/internal/app/store/organizations"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := models.Organization{
		Name:        "Helping Hands",
		Description: "Community outreach",
		Email:       "Contact@HelpingHands.org",
	}

	created, err := store.Create(ctx, org)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.EmailCI != "contact@helpinghands.org" {
		t.Errorf("EmailCI: got %q, want %q", created.EmailCI, "contact@helpinghands.org")
	}
	if created.Events == nil {
		t.Error("expected Events to be initialized")
	}
	if created.Status != "active" {
		t.Errorf("expected status 'active', got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := models.Organization{
		Name:  "First Org",
		Email: "dupe@example.org",
	}

	_, err := store.Create(ctx, org)
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same email, different casing, still a duplicate.
	org.Name = "Second Org"
	org.Email = "DUPE@example.org"
	_, err = store.Create(ctx, org)
	if err != organizationstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{
		Name:  "Lookup Org",
		Email: "Lookup@Example.org",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByEmail(ctx, "lookup@EXAMPLE.org")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fakeID := primitive.NewObjectID()
	_, err := store.GetByID(ctx, fakeID)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_PushPullEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{
		Name:  "Eventful Org",
		Email: "eventful@example.org",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	eventID := primitive.NewObjectID()
	if err := store.PushEvent(ctx, created.ID, eventID); err != nil {
		t.Fatalf("PushEvent failed: %v", err)
	}
	// Pushing twice should not duplicate.
	if err := store.PushEvent(ctx, created.ID, eventID); err != nil {
		t.Fatalf("second PushEvent failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Events) != 1 || found.Events[0] != eventID {
		t.Errorf("Events: got %v, want [%v]", found.Events, eventID)
	}

	if err := store.PullEvent(ctx, created.ID, eventID); err != nil {
		t.Fatalf("PullEvent failed: %v", err)
	}
	found, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after pull failed: %v", err)
	}
	if len(found.Events) != 0 {
		t.Errorf("Events after pull: got %v, want empty", found.Events)
	}
}

func TestStore_List_HidesPasswordHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Organization{
		Name:         "Listed Org",
		Email:        "listed@example.org",
		PasswordHash: "$2a$12$fakehashfakehashfakehash",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	orgs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orgs) == 0 {
		t.Fatal("expected at least one organization")
	}
	for _, org := range orgs {
		if org.PasswordHash != "" {
			t.Errorf("expected PasswordHash projected out, got %q", org.PasswordHash)
		}
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{
		Name:  "Before Update",
		Email: "update@example.org",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, created.ID, models.Organization{
		Description: "New description",
		Website:     "https://example.org",
		Coordinators: []models.Coordinator{
			{Name: "Pat Lee", Number: "+15551234567", Title: "Outreach Lead"},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Name != "Before Update" {
		t.Errorf("Name should be untouched, got %q", found.Name)
	}
	if found.Description != "New description" {
		t.Errorf("Description: got %q", found.Description)
	}
	if found.Website != "https://example.org" {
		t.Errorf("Website: got %q", found.Website)
	}
	if len(found.Coordinators) != 1 || found.Coordinators[0].Name != "Pat Lee" {
		t.Errorf("Coordinators: got %v", found.Coordinators)
	}
	if found.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{
		Name:  "Doomed Org",
		Email: "doomed@example.org",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("DeletedCount: got %d, want 1", n)
	}

	n, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second DeletedCount: got %d, want 0", n)
	}
}
