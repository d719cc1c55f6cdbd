package chats

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// authorView is a message author resolved for display. Unknown refers
// to deleted accounts; the message survives its author.
type authorView struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type messageView struct {
	ID        string     `json:"id"`
	Author    authorView `json:"author"`
	Text      string     `json:"text"`
	Image     string     `json:"image,omitempty"`
	File      string     `json:"file,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

type chatView struct {
	ID       string        `json:"id"`
	Event    string        `json:"event"`
	Messages []messageView `json:"messages"`
}

// ServeByEvent handles GET /api/chats/event/{eventId}. Messages keep
// append order; each author is resolved to name and email.
func (h *Handler) ServeByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventId"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid event id.")
		return
	}

	chat, err := h.Chats.GetByEvent(ctx, eventID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "No chat for this event.")
			return
		}
		h.errs.ServerError(w, r, "failed to load chat", err)
		return
	}

	view, err := h.resolveChat(ctx, chat)
	if err != nil {
		h.errs.ServerError(w, r, "failed to resolve chat authors", err)
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

// resolveChat builds the display view of a chat, resolving each
// distinct author once.
func (h *Handler) resolveChat(ctx context.Context, chat models.Chat) (chatView, error) {
	var userIDs, orgIDs []primitive.ObjectID
	seen := map[primitive.ObjectID]bool{}
	for _, m := range chat.Messages {
		if seen[m.Author.ID] {
			continue
		}
		seen[m.Author.ID] = true
		switch m.Author.Kind {
		case models.AuthorUser:
			userIDs = append(userIDs, m.Author.ID)
		case models.AuthorOrganization:
			orgIDs = append(orgIDs, m.Author.ID)
		}
	}

	names := map[primitive.ObjectID]authorView{}
	users, err := h.Users.GetByIDs(ctx, userIDs)
	if err != nil {
		return chatView{}, err
	}
	for _, u := range users {
		names[u.ID] = authorView{Name: u.Name, Email: u.Email}
	}
	orgs, err := h.Orgs.GetByIDs(ctx, orgIDs)
	if err != nil {
		return chatView{}, err
	}
	for _, o := range orgs {
		names[o.ID] = authorView{Name: o.Name, Email: o.Email}
	}

	view := chatView{
		ID:       chat.ID.Hex(),
		Event:    chat.Event.Hex(),
		Messages: make([]messageView, 0, len(chat.Messages)),
	}
	for _, m := range chat.Messages {
		author := authorView{
			Kind: m.Author.Kind,
			ID:   m.Author.ID.Hex(),
		}
		if resolved, ok := names[m.Author.ID]; ok {
			author.Name = resolved.Name
			author.Email = resolved.Email
		}
		view.Messages = append(view.Messages, messageView{
			ID:        m.ID.Hex(),
			Author:    author,
			Text:      m.Text,
			Image:     m.Image,
			File:      m.File,
			Timestamp: m.Timestamp,
		})
	}
	return view, nil
}
