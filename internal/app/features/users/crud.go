package users

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeList handles GET /api/users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Store.List(ctx)
	if err != nil {
		h.errs.ServerError(w, r, "failed to list users", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	httpjson.Write(w, http.StatusOK, users)
}

// ServeView handles GET /api/users/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "User not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to load user", err)
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

type updateRequest struct {
	Name             string   `json:"name" validate:"max=200" label:"Name"`
	Email            string   `json:"email" validate:"email,max=320" label:"Email"`
	InterestedFields []string `json:"interestedFields"`
	Resume           string   `json:"resume" validate:"max=500" label:"Resume"`
}

// HandleUpdate handles PUT /api/users/{id}. Users may only update
// their own record.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if !h.requireSelf(w, r, id) {
		return
	}

	var req updateRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "Invalid JSON body.")
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.BadRequest(w, res.First())
		return
	}

	err := h.Store.Update(ctx, id, models.User{
		Name:             req.Name,
		Email:            req.Email,
		InterestedFields: req.InterestedFields,
		Resume:           req.Resume,
	})
	if err != nil {
		h.errs.ServerError(w, r, "failed to update user", err)
		return
	}

	user, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.errs.ServerError(w, r, "failed to reload user", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "User updated.",
		"user":    user,
	})
}

// HandleDelete handles DELETE /api/users/{id}. Users may only delete
// their own account. Volunteer-set and message-author references are
// left dangling; readers resolve what they can.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if !h.requireSelf(w, r, id) {
		return
	}

	n, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.errs.ServerError(w, r, "failed to delete user", err)
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "User not found.")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "User deleted."})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.BadRequest(w, "Invalid user id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		httpjson.Unauthorized(w, "Sign in required.")
		return false
	}
	if !actor.IsUser() || actor.ID != id.Hex() {
		httpjson.Forbidden(w, "You can only modify your own account.")
		return false
	}
	return true
}
