package organizations

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	organizationstore "github.com/volunteerhub/volunteerhub/internal/app/store/organizations"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
)

type registerRequest struct {
	Name          string `json:"name" validate:"required,max=200" label:"Name"`
	Description   string `json:"description" validate:"max=5000" label:"Description"`
	Email         string `json:"email" validate:"required,email,max=320" label:"Email"`
	Password      string `json:"password" validate:"required,max=200" label:"Password"`
	ContactNumber string `json:"contactNumber" validate:"max=30" label:"Contact number"`
	Website       string `json:"website" validate:"max=500" label:"Website"`
}

// HandleRegister handles POST /api/organizations/register.
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
	req.ContactNumber = normalize.Phone(req.ContactNumber)

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
		h.errs.ServerError(w, r, "failed to hash organization password", err)
		return
	}

	created, err := h.Store.Create(ctx, models.Organization{
		Name:          req.Name,
		Description:   req.Description,
		Email:         req.Email,
		PasswordHash:  hash,
		ContactNumber: req.ContactNumber,
		Website:       req.Website,
	})
	if err != nil {
		if err == organizationstore.ErrDuplicateEmail {
			httpjson.Conflict(w, "An organization with this email already exists.")
			return
		}
		h.errs.ServerError(w, r, "failed to create organization", err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message":      "Organization registered successfully.",
		"organization": created,
	})
}
