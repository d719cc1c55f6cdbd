// Package auth provides the cookie-session credential layer.
//
// Every mutating endpoint is gated on a verified session actor rather
// than a caller-supplied id: users and organizations sign in with
// email + password (bcrypt), the session carries the actor identity,
// and handlers read it back with CurrentActor.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Actor kinds stored in the session.
const (
	KindUser         = "user"
	KindOrganization = "organization"
)

const (
	isAuthKey    = "is_authenticated"
	actorIDKey   = "actor_id"
	actorKindKey = "actor_kind"
	actorName    = "actor_name"
	actorEmail   = "actor_email"
)

// Actor is the verified identity cached in the session and injected
// into r.Context().
type Actor struct {
	ID    string
	Kind  string // "user" | "organization"
	Name  string
	Email string
}

// IsUser reports whether the actor is a volunteer account.
func (a *Actor) IsUser() bool { return a.Kind == KindUser }

// IsOrganization reports whether the actor is an organization account.
func (a *Actor) IsOrganization() bool { return a.Kind == KindOrganization }

type ctxKey string

const currentActorKey ctxKey = "currentActor"

// SessionManager owns the cookie store and session middleware.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a SessionManager with a signed cookie store.
// The secure flag controls Secure cookies and SameSite mode; it should
// be on in production.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// SignIn writes the actor into the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, actor Actor) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[actorIDKey] = actor.ID
	sess.Values[actorKindKey] = actor.Kind
	sess.Values[actorName] = actor.Name
	sess.Values[actorEmail] = actor.Email
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionActor injects the session actor into context if present.
// It never rejects; handlers that require identity use RequireActor.
func (sm *SessionManager) LoadSessionActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			a := &Actor{
				ID:    getString(sess, actorIDKey),
				Kind:  getString(sess, actorKindKey),
				Name:  getString(sess, actorName),
				Email: getString(sess, actorEmail),
			}
			r = withActor(r, a)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireActor ensures a signed-in actor is in context, responding 401
// otherwise.
func (sm *SessionManager) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentActor(r); !ok {
			httpjson.Unauthorized(w, "Sign in required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireKind ensures the session actor has the given kind, responding
// 401 when absent and 403 on a kind mismatch.
func (sm *SessionManager) RequireKind(kind string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := CurrentActor(r)
			if !ok {
				httpjson.Unauthorized(w, "Sign in required.")
				return
			}
			if a.Kind != kind {
				httpjson.Forbidden(w, "Not allowed for this account type.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentActor returns the session actor and a found flag.
func CurrentActor(r *http.Request) (*Actor, bool) {
	a, ok := r.Context().Value(currentActorKey).(*Actor)
	return a, ok
}

// WithTestActor injects an actor directly, bypassing the session
// middleware. For handler tests only.
func WithTestActor(r *http.Request, a *Actor) *http.Request {
	return withActor(r, a)
}

func withActor(r *http.Request, a *Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentActorKey, a))
}

func getString(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}

// bcryptCost matches the cost used for stored credentials.
const bcryptCost = 12

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
