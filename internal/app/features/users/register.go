package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
)

type registerRequest struct {
	Name             string   `json:"name" validate:"required,max=200" label:"Name"`
	Email            string   `json:"email" validate:"required,email,max=320" label:"Email"`
	Password         string   `json:"password" validate:"required,max=200" label:"Password"`
	InterestedFields []string `json:"interestedFields"`
	Resume           string   `json:"resume" validate:"max=500" label:"Resume"`
}

// HandleRegister handles POST /api/users/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req registerRequest
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
	if len(req.Password) < 8 {
		httpjson.BadRequest(w, "Password must be at least 8 characters.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.errs.ServerError(w, r, "failed to hash user password", err)
		return
	}

	created, err := h.Store.Create(ctx, models.User{
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     hash,
		InterestedFields: req.InterestedFields,
		Resume:           req.Resume,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Conflict(w, "A user with this email already exists.")
			return
		}
		h.errs.ServerError(w, r, "failed to create user", err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully.",
		"user":    created,
	})
}
