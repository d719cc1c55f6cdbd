package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList handles GET /api/events.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		h.errs.ServerError(w, r, "failed to list events", err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	httpjson.Write(w, http.StatusOK, events)
}

// ServeView handles GET /api/events/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Event not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to load event", err)
		return
	}
	httpjson.Write(w, http.StatusOK, event)
}

// ServeOrganizationEvents handles
// GET /api/events/organization/{organizationId}/events.
func (h *Handler) ServeOrganizationEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	raw := chi.URLParam(r, "organizationId")
	orgID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.BadRequest(w, "Invalid organization id.")
		return
	}

	events, err := h.Events.ListByOrganization(ctx, orgID)
	if err != nil {
		h.errs.ServerError(w, r, "failed to list organization events", err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	httpjson.Write(w, http.StatusOK, events)
}

type updateRequest struct {
	Name         string               `json:"name" validate:"max=200" label:"Name"`
	Description  string               `json:"description" validate:"max=5000" label:"Description"`
	Date         string               `json:"date" label:"Date"`
	Location     string               `json:"location" validate:"max=300" label:"Location"`
	City         string               `json:"city" validate:"max=120" label:"City"`
	Coordinators []models.Coordinator `json:"coordinators"`
}

// HandleUpdate handles PUT /api/events/{id}. Only the owning
// organization may update.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	event, ok := h.requireOwner(ctx, w, r, id)
	if !ok {
		return
	}

	var req updateRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "Invalid JSON body.")
		return
	}

	req.Name = normalize.Name(req.Name)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.BadRequest(w, res.First())
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			httpjson.BadRequest(w, "Date must be RFC 3339, e.g. 2026-10-03T09:00:00Z.")
			return
		}
		date = parsed.UTC()
	}

	err := h.Events.Update(ctx, event.ID, models.Event{
		Name:         req.Name,
		Description:  req.Description,
		Date:         date,
		Location:     req.Location,
		City:         req.City,
		Coordinators: req.Coordinators,
	})
	if err != nil {
		if err == eventstore.ErrEventNotFound {
			httpjson.NotFound(w, "Event not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to update event", err)
		return
	}

	updated, err := h.Events.GetByID(ctx, event.ID)
	if err != nil {
		h.errs.ServerError(w, r, "failed to reload event", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Event updated.",
		"event":   updated,
	})
}

// HandleDelete handles DELETE /api/events/{id}. Deletes the chat and
// removes the organization's event reference as well.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	event, ok := h.requireOwner(ctx, w, r, id)
	if !ok {
		return
	}

	n, err := h.Events.Delete(ctx, event.ID)
	if err != nil {
		h.errs.ServerError(w, r, "failed to delete event", err)
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "Event not found.")
		return
	}

	if _, err := h.Chats.DeleteByEvent(ctx, event.ID); err != nil {
		h.Log.Error("failed to delete chat for deleted event",
			zap.String("event_id", event.ID.Hex()),
			zap.Error(err))
	}
	if err := h.Orgs.PullEvent(ctx, event.Organization, event.ID); err != nil {
		h.Log.Error("failed to remove event reference from organization",
			zap.String("event_id", event.ID.Hex()),
			zap.String("organization_id", event.Organization.Hex()),
			zap.Error(err))
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Event deleted."})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.BadRequest(w, "Invalid event id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// requireOwner loads the event and ensures the session actor is its
// owning organization.
func (h *Handler) requireOwner(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID) (models.Event, bool) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		httpjson.Unauthorized(w, "Sign in required.")
		return models.Event{}, false
	}

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Event not found.")
			return models.Event{}, false
		}
		h.errs.ServerError(w, r, "failed to load event", err)
		return models.Event{}, false
	}

	if !actor.IsOrganization() || actor.ID != event.Organization.Hex() {
		httpjson.Forbidden(w, "Only the organization that posted this event can modify it.")
		return models.Event{}, false
	}
	return event, true
}
