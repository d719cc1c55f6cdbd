package organizations_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/app/features/organizations"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*organizations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "volunteerhub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return organizations.NewHandler(db, sm, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleRegister(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/organizations/register", map[string]string{
		"name":        "Helping Hands",
		"description": "Community outreach",
		"email":       "contact@helpinghands.org",
		"password":    "correct horse battery",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp struct {
		Message      string `json:"message"`
		Organization struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"organization"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Organization.ID == "" {
		t.Error("expected organization id in response")
	}
	if resp.Organization.Email != "contact@helpinghands.org" {
		t.Errorf("email: got %q", resp.Organization.Email)
	}

	// The password hash must never appear in the response.
	if body := rec.Body.String(); containsAny(body, "password", "Password") {
		t.Errorf("response leaks password material: %s", body)
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]string{
		"name":     "First",
		"email":    "dupe@example.org",
		"password": "long enough pass",
	}
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/organizations/register", body))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	body["name"] = "Second"
	rec = httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/organizations/register", body))
	testutil.AssertStatus(t, rec, http.StatusConflict)
	testutil.AssertErrorBody(t, rec, "already exists")
}

func TestHandleRegister_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/organizations/register", map[string]string{
		"name": "No Email",
	}))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestLoginFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/organizations/register", map[string]string{
		"name":     "Login Org",
		"email":    "login@example.org",
		"password": "correct horse battery",
	}))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	// Wrong password → 401.
	rec = httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/organizations/login", map[string]string{
		"email":    "login@example.org",
		"password": "wrong",
	}))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	// Unknown email → 401, same message.
	rec = httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/organizations/login", map[string]string{
		"email":    "nobody@example.org",
		"password": "whatever",
	}))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	// Correct credentials → 200 with a session cookie.
	rec = httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/organizations/login", map[string]string{
		"email":    "login@example.org",
		"password": "correct horse battery",
	}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("expected session cookie on login")
	}
}

func TestServeView_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(
		httptest.NewRequest("GET", "/api/organizations/x", nil),
		"id", primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()
	h.ServeView(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleUpdate_SelfOnly(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Mine", "mine@example.org")
	other := fx.CreateOrganization(ctx, "Theirs", "theirs@example.org")

	// Another organization's session cannot update this record.
	req := testutil.NewJSONRequest(t, "PUT", "/api/organizations/x", map[string]string{"name": "Hijack"})
	req = testutil.WithChiURLParam(req, "id", org.ID.Hex())
	req = testutil.WithActor(req, testutil.OrganizationActor(other.ID, other.Name, other.Email))
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	// The owner can.
	req = testutil.NewJSONRequest(t, "PUT", "/api/organizations/x", map[string]string{"description": "Updated"})
	req = testutil.WithChiURLParam(req, "id", org.ID.Hex())
	req = testutil.WithActor(req, testutil.OrganizationActor(org.ID, org.Name, org.Email))
	rec = httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		Organization struct {
			Description string `json:"description"`
		} `json:"organization"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Organization.Description != "Updated" {
		t.Errorf("description: got %q", resp.Organization.Description)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Doomed", "doomed@example.org")

	req := testutil.WithChiURLParam(
		httptest.NewRequest("DELETE", "/api/organizations/x", nil),
		"id", org.ID.Hex())
	req = testutil.WithActor(req, testutil.OrganizationActor(org.ID, org.Name, org.Email))
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	// Second delete → 404.
	rec = httptest.NewRecorder()
	h.HandleDelete(rec, req)
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				return true
			}
		}
	}
	return false
}
