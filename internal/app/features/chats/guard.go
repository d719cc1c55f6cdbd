package chats

import (
	"context"
	"errors"

	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	errGuardNotFound  = errors.New("chat or event not found")
	errGuardForbidden = errors.New("actor may not post in this chat")
)

// authorizeAppend checks that the actor may post in the chat. User
// actors must be in the event's accepted set; organization actors must
// own the event. The check runs against the current event document on
// every append, so a removed volunteer loses access immediately.
func (h *Handler) authorizeAppend(ctx context.Context, chat models.Chat, actor *auth.Actor) (models.MessageAuthor, error) {
	event, err := h.Events.GetByID(ctx, chat.Event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.MessageAuthor{}, errGuardNotFound
		}
		return models.MessageAuthor{}, err
	}

	actorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return models.MessageAuthor{}, errGuardForbidden
	}

	switch {
	case actor.IsUser():
		if !event.HasAccepted(actorID) {
			return models.MessageAuthor{}, errGuardForbidden
		}
		return models.MessageAuthor{Kind: models.AuthorUser, ID: actorID}, nil
	case actor.IsOrganization():
		if event.Organization != actorID {
			return models.MessageAuthor{}, errGuardForbidden
		}
		return models.MessageAuthor{Kind: models.AuthorOrganization, ID: actorID}, nil
	default:
		return models.MessageAuthor{}, errGuardForbidden
	}
}
