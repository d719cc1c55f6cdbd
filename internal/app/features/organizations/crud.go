package organizations

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

// ServeList handles GET /api/organizations.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Store.List(ctx)
	if err != nil {
		h.errs.ServerError(w, r, "failed to list organizations", err)
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	httpjson.Write(w, http.StatusOK, orgs)
}

// ServeView handles GET /api/organizations/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	org, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Organization not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to load organization", err)
		return
	}
	httpjson.Write(w, http.StatusOK, org)
}

type updateRequest struct {
	Name                    string               `json:"name" validate:"max=200" label:"Name"`
	Description             string               `json:"description" validate:"max=5000" label:"Description"`
	Email                   string               `json:"email" validate:"email,max=320" label:"Email"`
	Logo                    string               `json:"logo" validate:"max=500" label:"Logo"`
	ContactNumber           string               `json:"contactNumber" validate:"max=30" label:"Contact number"`
	Website                 string               `json:"website" validate:"max=500" label:"Website"`
	BannerImage             string               `json:"bannerImage" validate:"max=500" label:"Banner image"`
	LocationAlternateNumber string               `json:"locationAlternateNumber" validate:"max=30" label:"Alternate number"`
	AlternateEmail          string               `json:"alternateEmail" validate:"email,max=320" label:"Alternate email"`
	Coordinators            []models.Coordinator `json:"coordinators"`
	Status                  string               `json:"status" validate:"max=20" label:"Status"`
}

// HandleUpdate handles PUT /api/organizations/{id}. Organizations may
// only update their own record.
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
	req.ContactNumber = normalize.Phone(req.ContactNumber)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.BadRequest(w, res.First())
		return
	}
	for _, c := range req.Coordinators {
		if c.Name == "" || c.Number == "" {
			httpjson.BadRequest(w, "Each coordinator needs a name and a number.")
			return
		}
	}

	err := h.Store.Update(ctx, id, models.Organization{
		Name:                    req.Name,
		Description:             req.Description,
		Email:                   req.Email,
		Logo:                    req.Logo,
		ContactNumber:           req.ContactNumber,
		Website:                 req.Website,
		BannerImage:             req.BannerImage,
		LocationAlternateNumber: req.LocationAlternateNumber,
		AlternateEmail:          req.AlternateEmail,
		Coordinators:            req.Coordinators,
		Status:                  req.Status,
	})
	if err != nil {
		h.errs.ServerError(w, r, "failed to update organization", err)
		return
	}

	org, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.errs.ServerError(w, r, "failed to reload organization", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":      "Organization updated.",
		"organization": org,
	})
}

// HandleDelete handles DELETE /api/organizations/{id}. Organizations
// may only delete their own record. Events are not cascaded; their
// organization references dangle and readers tolerate that.
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
		h.errs.ServerError(w, r, "failed to delete organization", err)
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "Organization not found.")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Organization deleted."})
}

// pathID parses the {id} URL parameter, writing a 400 on bad input.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.BadRequest(w, "Invalid organization id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// requireSelf ensures the session actor is the organization being
// modified.
func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		httpjson.Unauthorized(w, "Sign in required.")
		return false
	}
	if !actor.IsOrganization() || actor.ID != id.Hex() {
		httpjson.Forbidden(w, "You can only modify your own organization.")
		return false
	}
	return true
}
