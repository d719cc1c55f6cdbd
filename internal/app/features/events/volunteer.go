package events

import (
	"context"
	"encoding/json"
	"net/http"

	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type volunteerRequest struct {
	EventID string `json:"eventId" validate:"required,objectid" label:"Event id"`
	UserID  string `json:"userId" validate:"required,objectid" label:"User id"`
}

func (h *Handler) decodeVolunteerRequest(w http.ResponseWriter, r *http.Request) (eventID, userID primitive.ObjectID, ok bool) {
	var req volunteerRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "Invalid JSON body.")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.BadRequest(w, res.First())
		return
	}
	eventID, _ = primitive.ObjectIDFromHex(req.EventID)
	userID, _ = primitive.ObjectIDFromHex(req.UserID)
	return eventID, userID, true
}

// HandleVolunteerRequest handles POST /api/events/volunteer/request.
// The session actor must be the user named in the body; nobody can
// volunteer on someone else's behalf.
func (h *Handler) HandleVolunteerRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	actor, ok := auth.CurrentActor(r)
	if !ok {
		httpjson.Unauthorized(w, "Sign in required.")
		return
	}

	eventID, userID, ok := h.decodeVolunteerRequest(w, r)
	if !ok {
		return
	}
	if !actor.IsUser() || actor.ID != userID.Hex() {
		httpjson.Forbidden(w, "You can only request to volunteer as yourself.")
		return
	}

	switch err := h.Events.RequestVolunteer(ctx, eventID, userID); err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"message": "Volunteer request recorded."})
	case eventstore.ErrEventNotFound:
		httpjson.NotFound(w, "Event not found.")
	case eventstore.ErrAlreadyRequested:
		httpjson.Conflict(w, "You have already requested or been accepted for this event.")
	default:
		h.errs.ServerError(w, r, "failed to record volunteer request", err)
	}
}

// HandleVolunteerAccept handles POST /api/events/volunteer/accept.
// Only the organization that owns the event may accept.
func (h *Handler) HandleVolunteerAccept(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	actor, ok := auth.CurrentActor(r)
	if !ok {
		httpjson.Unauthorized(w, "Sign in required.")
		return
	}

	eventID, userID, ok := h.decodeVolunteerRequest(w, r)
	if !ok {
		return
	}

	event, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Event not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to load event", err)
		return
	}
	if !actor.IsOrganization() || actor.ID != event.Organization.Hex() {
		httpjson.Forbidden(w, "Only the organization that posted this event can accept volunteers.")
		return
	}

	switch err := h.Events.AcceptVolunteer(ctx, eventID, userID); err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"message": "Volunteer accepted."})
	case eventstore.ErrEventNotFound:
		httpjson.NotFound(w, "Event not found.")
	case eventstore.ErrNotRequested:
		httpjson.BadRequest(w, "This user has not requested to volunteer for this event.")
	default:
		h.errs.ServerError(w, r, "failed to accept volunteer", err)
	}
}
