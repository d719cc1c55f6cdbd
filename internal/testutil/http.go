package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserActor returns a session actor for the given volunteer account.
func UserActor(id primitive.ObjectID, name, email string) *auth.Actor {
	return &auth.Actor{ID: id.Hex(), Kind: auth.KindUser, Name: name, Email: email}
}

// OrganizationActor returns a session actor for the given organization.
func OrganizationActor(id primitive.ObjectID, name, email string) *auth.Actor {
	return &auth.Actor{ID: id.Hex(), Kind: auth.KindOrganization, Name: name, Email: email}
}

// WithActor adds a session actor to the request context, bypassing the
// session middleware.
func WithActor(r *http.Request, a *auth.Actor) *http.Request {
	return auth.WithTestActor(r, a)
}

// NewJSONRequest creates a request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON unmarshals the recorder body into v, failing the test on
// malformed JSON.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
}

// AssertStatus checks the response status code.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rec.Code != expected {
		t.Errorf("status code: got %d, want %d\nbody: %s", rec.Code, expected, rec.Body.String())
	}
}

// AssertErrorBody checks that the response is the JSON error envelope
// with a message containing substr.
func AssertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	var body map[string]string
	DecodeJSON(t, rec, &body)
	if !strings.Contains(body["error"], substr) {
		t.Errorf("error message %q does not contain %q", body["error"], substr)
	}
}
