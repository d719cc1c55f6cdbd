package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

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

type createRequest struct {
	Name           string               `json:"name" validate:"required,max=200" label:"Name"`
	Description    string               `json:"description" validate:"required,max=5000" label:"Description"`
	Date           string               `json:"date" validate:"required" label:"Date"`
	OrganizationID string               `json:"organizationId" validate:"required,objectid" label:"Organization id"`
	Location       string               `json:"location" validate:"required,max=300" label:"Location"`
	City           string               `json:"city" validate:"required,max=120" label:"City"`
	Coordinators   []models.Coordinator `json:"coordinators"`
}

// HandleCreate handles POST /api/events. The event and its chat are
// created together; if the chat insert fails the event is deleted
// again so no event exists without a chat.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	actor, ok := auth.CurrentActor(r)
	if !ok {
		httpjson.Unauthorized(w, "Sign in required.")
		return
	}

	var req createRequest
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
	for _, c := range req.Coordinators {
		if c.Name == "" || c.Number == "" {
			httpjson.BadRequest(w, "Each coordinator needs a name and a number.")
			return
		}
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		httpjson.BadRequest(w, "Date must be RFC 3339, e.g. 2026-10-03T09:00:00Z.")
		return
	}

	orgID, _ := primitive.ObjectIDFromHex(req.OrganizationID)
	if actor.ID != orgID.Hex() {
		httpjson.Forbidden(w, "You can only create events for your own organization.")
		return
	}
	if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Organization not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to load organization", err)
		return
	}

	event, err := h.Events.Create(ctx, models.Event{
		Name:         req.Name,
		Description:  req.Description,
		Date:         date.UTC(),
		Organization: orgID,
		Location:     req.Location,
		City:         req.City,
		Coordinators: req.Coordinators,
	})
	if err != nil {
		h.errs.ServerError(w, r, "failed to create event", err)
		return
	}

	chat, err := h.Chats.Create(ctx, event.ID)
	if err != nil {
		// Compensate so we never leave an event without a chat.
		if _, delErr := h.Events.Delete(ctx, event.ID); delErr != nil {
			h.Log.Error("failed to roll back event after chat create failure",
				zap.String("event_id", event.ID.Hex()),
				zap.Error(delErr))
		}
		h.errs.ServerError(w, r, "failed to create event chat", err)
		return
	}
	if err := h.Events.AttachChat(ctx, event.ID, chat.ID); err != nil {
		h.errs.ServerError(w, r, "failed to link event chat", err)
		return
	}
	event.Chat = chat.ID

	if err := h.Orgs.PushEvent(ctx, orgID, event.ID); err != nil {
		h.errs.ServerError(w, r, "failed to register event on organization", err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message": "Event created successfully.",
		"event":   event,
	})
}
