package users_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/app/features/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "volunteerhub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return users.NewHandler(db, sm, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleRegister(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/users/register", map[string]any{
		"name":             "Jane Volunteer",
		"email":            "jane@example.com",
		"password":         "correct horse battery",
		"interestedFields": []string{"education"},
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp struct {
		User struct {
			ID               string   `json:"id"`
			Name             string   `json:"name"`
			InterestedFields []string `json:"interestedFields"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.User.ID == "" {
		t.Error("expected user id in response")
	}
	if len(resp.User.InterestedFields) != 1 {
		t.Errorf("interestedFields: got %v", resp.User.InterestedFields)
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]any{
		"name":     "First",
		"email":    "dupe@example.com",
		"password": "long enough pass",
	}
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/users/register", body))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	rec = httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/users/register", body))
	testutil.AssertStatus(t, rec, http.StatusConflict)
}

func TestHandleRegister_ShortPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/users/register", map[string]any{
		"name":     "Short",
		"email":    "short@example.com",
		"password": "tiny",
	}))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestLoginFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/users/register", map[string]any{
		"name":     "Login User",
		"email":    "login@example.com",
		"password": "correct horse battery",
	}))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	rec = httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/users/login", map[string]any{
		"email":    "login@example.com",
		"password": "wrong",
	}))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	rec = httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/users/login", map[string]any{
		"email":    "LOGIN@example.com",
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
		httptest.NewRequest("GET", "/api/users/x", nil),
		"id", primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()
	h.ServeView(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleUpdate_SelfOnly(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := fx.CreateUser(ctx, "Me", "me@example.com")
	other := fx.CreateUser(ctx, "Other", "other@example.com")

	req := testutil.NewJSONRequest(t, "PUT", "/api/users/x", map[string]any{"name": "Hijack"})
	req = testutil.WithChiURLParam(req, "id", me.ID.Hex())
	req = testutil.WithActor(req, testutil.UserActor(other.ID, other.Name, other.Email))
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	req = testutil.NewJSONRequest(t, "PUT", "/api/users/x", map[string]any{"name": "Renamed"})
	req = testutil.WithChiURLParam(req, "id", me.ID.Hex())
	req = testutil.WithActor(req, testutil.UserActor(me.ID, me.Name, me.Email))
	rec = httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.User.Name != "Renamed" {
		t.Errorf("name: got %q", resp.User.Name)
	}
}
