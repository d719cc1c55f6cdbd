package chats

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chatstore "github.com/volunteerhub/volunteerhub/internal/app/store/chats"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/app/system/uploads"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleAppendMessage handles POST /api/chats/{chatId}/message.
// Multipart form: text field `text`, optional `image` and `file`
// parts. The author is the session actor, never a form field.
func (h *Handler) HandleAppendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	actor, ok := auth.CurrentActor(r)
	if !ok {
		httpjson.Unauthorized(w, "Sign in required.")
		return
	}

	chatID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "chatId"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid chat id.")
		return
	}

	if err := r.ParseMultipartForm(limits.MaxChatMessageForm); err != nil {
		httpjson.BadRequest(w, "Expected a multipart form.")
		return
	}

	text := strings.TrimSpace(h.sanitize.Sanitize(r.FormValue("text")))
	if len(text) > limits.MaxMessageTextLen {
		httpjson.BadRequest(w, "Message text is too long.")
		return
	}

	chat, err := h.Chats.GetByID(ctx, chatID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "Chat not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to load chat", err)
		return
	}

	author, err := h.authorizeAppend(ctx, chat, actor)
	if err != nil {
		switch err {
		case errGuardNotFound:
			httpjson.NotFound(w, "Event for this chat not found.")
		case errGuardForbidden:
			httpjson.Forbidden(w, "Only accepted volunteers and the organizing organization can post here.")
		default:
			h.errs.ServerError(w, r, "chat authorization failed", err)
		}
		return
	}

	imagePath, ok := h.storeAttachment(ctx, w, r, "image", "chat-images")
	if !ok {
		return
	}
	filePath, ok := h.storeAttachment(ctx, w, r, "file", "chat-files")
	if !ok {
		return
	}

	if text == "" && imagePath == "" && filePath == "" {
		httpjson.BadRequest(w, "A message needs text, an image, or a file.")
		return
	}

	msg, updated, err := h.Chats.AppendMessage(ctx, chatID, models.Message{
		Author: author,
		Text:   text,
		Image:  imagePath,
		File:   filePath,
	})
	if err != nil {
		if err == chatstore.ErrChatNotFound {
			httpjson.NotFound(w, "Chat not found.")
			return
		}
		h.errs.ServerError(w, r, "failed to append chat message", err)
		return
	}

	h.Hub.BroadcastMessage(chatID.Hex(), msg)

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message": msg,
		"chat":    updated,
	})
}

// storeAttachment saves an optional multipart file part. Returns the
// stored path ("" when the part is absent) and false after writing an
// error response.
func (h *Handler) storeAttachment(ctx context.Context, w http.ResponseWriter, r *http.Request, field, category string) (string, bool) {
	part, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", true
		}
		httpjson.BadRequest(w, "Could not read the uploaded "+field+".")
		return "", false
	}
	defer closePart(part)

	if h.Files == nil {
		httpjson.BadRequest(w, "Attachments are not enabled.")
		return "", false
	}

	info, err := uploads.Save(ctx, h.Files, category, header.Filename, part, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		h.errs.ServerError(w, r, "failed to store chat attachment", err)
		return "", false
	}
	return info.Path, true
}

func closePart(part multipart.File) {
	_ = part.Close()
}
