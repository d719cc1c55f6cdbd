package organizations

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/organizations/login. On success the
// session cookie carries the organization actor.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req loginRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "Invalid JSON body.")
		return
	}
	req.Email = normalize.Email(req.Email)
	if req.Email == "" || req.Password == "" {
		httpjson.BadRequest(w, "Email and password are required.")
		return
	}

	org, err := h.Store.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Unauthorized(w, "Invalid email or password.")
			return
		}
		h.errs.ServerError(w, r, "organization login lookup failed", err)
		return
	}
	if !auth.CheckPassword(org.PasswordHash, req.Password) {
		httpjson.Unauthorized(w, "Invalid email or password.")
		return
	}

	actor := auth.Actor{
		ID:    org.ID.Hex(),
		Kind:  auth.KindOrganization,
		Name:  org.Name,
		Email: org.Email,
	}
	if err := h.Sessions.SignIn(w, r, actor); err != nil {
		h.errs.ServerError(w, r, "failed to establish organization session", err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":      "Logged in successfully.",
		"organization": org,
	})
}

// HandleLogout handles POST /api/organizations/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.errs.ServerError(w, r, "failed to clear session", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Logged out."})
}
