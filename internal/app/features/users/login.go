package users

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

// HandleLogin handles POST /api/users/login. On success the session
// cookie carries the user actor.
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

	user, err := h.Store.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Unauthorized(w, "Invalid email or password.")
			return
		}
		h.errs.ServerError(w, r, "user login lookup failed", err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httpjson.Unauthorized(w, "Invalid email or password.")
		return
	}

	actor := auth.Actor{
		ID:    user.ID.Hex(),
		Kind:  auth.KindUser,
		Name:  user.Name,
		Email: user.Email,
	}
	if err := h.Sessions.SignIn(w, r, actor); err != nil {
		h.errs.ServerError(w, r, "failed to establish user session", err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Logged in successfully.",
		"user":    user,
	})
}

// HandleLogout handles POST /api/users/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.errs.ServerError(w, r, "failed to clear session", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Logged out."})
}
