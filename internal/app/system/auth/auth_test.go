package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager("0123456789abcdef0123456789abcdef", "volunteerhub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestSignInRoundTrip(t *testing.T) {
	sm := newTestManager(t)

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users/login", nil)
	actor := Actor{ID: "507f1f77bcf86cd799439011", Kind: KindUser, Name: "Jane", Email: "jane@example.com"}
	if err := sm.SignIn(rec, req, actor); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if cookie == "" {
		t.Fatal("no session cookie set")
	}

	// Replay the cookie through the middleware.
	var got *Actor
	handler := sm.LoadSessionActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentActor(r)
	}))
	req2 := httptest.NewRequest("POST", "/api/events/volunteer/request", nil)
	req2.Header.Set("Cookie", cookie)
	handler.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("actor not loaded from session")
	}
	if got.ID != actor.ID || got.Kind != KindUser || got.Email != actor.Email {
		t.Errorf("loaded actor = %+v, want %+v", got, actor)
	}
}

func TestRequireActor(t *testing.T) {
	sm := newTestManager(t)
	handler := sm.RequireActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No session → 401.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/chats/x/message", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without actor: got %d, want 401", rec.Code)
	}

	// Injected actor → 200.
	rec = httptest.NewRecorder()
	req := WithTestActor(httptest.NewRequest("POST", "/api/chats/x/message", nil),
		&Actor{ID: "id", Kind: KindUser})
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("with actor: got %d, want 200", rec.Code)
	}
}

func TestRequireKind(t *testing.T) {
	sm := newTestManager(t)
	handler := sm.RequireKind(KindOrganization)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := WithTestActor(httptest.NewRequest("POST", "/api/events", nil), &Actor{ID: "id", Kind: KindUser})
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong kind: got %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = WithTestActor(httptest.NewRequest("POST", "/api/events", nil), &Actor{ID: "id", Kind: KindOrganization})
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("matching kind: got %d, want 200", rec.Code)
	}
}

func TestSignOut(t *testing.T) {
	sm := newTestManager(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/logout", nil)
	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "Max-Age=0") {
		t.Errorf("expected expiring cookie, got %q", cookie)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$") {
		t.Error("expected bcrypt hash to start with $")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("CheckPassword rejected correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword accepted wrong password")
	}

	// bcrypt salts, so hashing twice differs
	hash2, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == hash2 {
		t.Error("expected different hashes for same password")
	}
}
